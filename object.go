package thingset

// Category groups data objects by role and doubles as the first byte of a
// binary request (for the seven wire categories) or the word following `!`
// in a text request.
type Category uint8

const (
	CategoryInfo   Category = 0x01
	CategoryConf   Category = 0x02
	CategoryInput  Category = 0x03
	CategoryOutput Category = 0x04
	CategoryRec    Category = 0x05
	CategoryCal    Category = 0x06
	CategoryExec   Category = 0x0B
	CategoryPub    Category = 0x12
)

var categoryWords = map[string]Category{
	"info":   CategoryInfo,
	"conf":   CategoryConf,
	"input":  CategoryInput,
	"output": CategoryOutput,
	"rec":    CategoryRec,
	"cal":    CategoryCal,
	"exec":   CategoryExec,
	"pub":    CategoryPub,
}

// Type is the scalar type tag of a data object.
type Type uint8

const (
	TypeBool Type = iota
	TypeUint16
	TypeInt16
	TypeUint32
	TypeInt32
	TypeUint64
	TypeInt64
	TypeFloat32
	TypeText
	TypeDecimalFraction
	TypeArrayInt32
	TypeArrayFloat32
	TypeExec
)

// Access is a bitset of the operations permitted on a data object, at a
// given authentication level.
type Access uint8

const (
	AccessRead Access = 1 << iota
	AccessWrite
	AccessReadAuth
	AccessWriteAuth
	AccessExec
	AccessExecAuth
)

// Slot is the mutable storage backing a scalar data object. Concrete
// implementations wrap a pointer to the application's own state; the
// engine never allocates or owns the value itself.
type Slot interface {
	SlotType() Type
}

// BoolSlot binds a data object to a *bool.
type BoolSlot struct{ Ptr *bool }

func (BoolSlot) SlotType() Type { return TypeBool }

// Uint16Slot binds a data object to a *uint16.
type Uint16Slot struct{ Ptr *uint16 }

func (Uint16Slot) SlotType() Type { return TypeUint16 }

// Int16Slot binds a data object to a *int16.
type Int16Slot struct{ Ptr *int16 }

func (Int16Slot) SlotType() Type { return TypeInt16 }

// Uint32Slot binds a data object to a *uint32.
type Uint32Slot struct{ Ptr *uint32 }

func (Uint32Slot) SlotType() Type { return TypeUint32 }

// Int32Slot binds a data object to a *int32.
type Int32Slot struct{ Ptr *int32 }

func (Int32Slot) SlotType() Type { return TypeInt32 }

// Uint64Slot binds a data object to a *uint64.
type Uint64Slot struct{ Ptr *uint64 }

func (Uint64Slot) SlotType() Type { return TypeUint64 }

// Int64Slot binds a data object to a *int64.
type Int64Slot struct{ Ptr *int64 }

func (Int64Slot) SlotType() Type { return TypeInt64 }

// Float32Slot binds a data object to a *float32.
type Float32Slot struct{ Ptr *float32 }

func (Float32Slot) SlotType() Type { return TypeFloat32 }

// TextSlot binds a data object to a *string with a fixed rendering/storage
// capacity; writes longer than Capacity bytes are rejected as invalid.
type TextSlot struct {
	Ptr      *string
	Capacity int
}

func (TextSlot) SlotType() Type { return TypeText }

// DecimalSlot binds a data object to an integer-backed scaled quantity:
// value = *Ptr * 10^Exponent. The exponent is fixed at registration time
// (it is the object's Detail field) and is not itself writable.
type DecimalSlot struct {
	Ptr *int64
}

func (DecimalSlot) SlotType() Type { return TypeDecimalFraction }

// Int32ArraySlot binds a data object to a homogeneous, fixed-capacity array
// of int32 values. Len reports the number of currently meaningful elements;
// writes replace the first len(values) entries and update *Len.
type Int32ArraySlot struct {
	Values []int32 // len(Values) == capacity
	Len    *int
}

func (Int32ArraySlot) SlotType() Type { return TypeArrayInt32 }

// Float32ArraySlot binds a data object to a homogeneous, fixed-capacity
// array of float32 values.
type Float32ArraySlot struct {
	Values []float32
	Len    *int
}

func (Float32ArraySlot) SlotType() Type { return TypeArrayFloat32 }

// Descriptor is an immutable data object entry in the object table. The
// engine borrows descriptors for its lifetime and never mutates them.
type Descriptor struct {
	ID       uint16
	Name     string
	Category Category
	Access   Access
	Type     Type

	// Detail is type-dependent: the decimal digit count used to render a
	// TypeFloat32 value (or each TypeArrayFloat32 element) in text, or the
	// fixed power-of-ten exponent of a TypeDecimalFraction value. Unused
	// for other types.
	Detail int

	// Value is the scalar or array binding; nil when Type == TypeExec.
	Value Slot

	// Exec is the callback invoked by an execute request; nil unless
	// Type == TypeExec. It takes no arguments and returns nothing, per
	// the embedded callback contract this engine does not implement.
	Exec func()
}

// CanRead reports whether auth permits a read of d.
func (d *Descriptor) CanRead(auth AuthLevel) bool {
	if d.Access&AccessRead != 0 {
		return true
	}
	if d.Access&AccessReadAuth != 0 && auth >= AuthUser {
		return true
	}
	return false
}

// CanWrite reports whether auth permits a write to d.
func (d *Descriptor) CanWrite(auth AuthLevel) bool {
	if d.Access&AccessWrite != 0 {
		return true
	}
	if d.Access&AccessWriteAuth != 0 && auth >= AuthUser {
		return true
	}
	return false
}

// CanExec reports whether auth permits executing d.
func (d *Descriptor) CanExec(auth AuthLevel) bool {
	if d.Access&AccessExec != 0 {
		return true
	}
	if d.Access&AccessExecAuth != 0 && auth >= AuthUser {
		return true
	}
	return false
}

// Table is a read-only, externally supplied registry of data object
// descriptors. Lookups are linear scans: object tables in this domain are
// small (tens to low hundreds of entries), so a hash index buys nothing.
type Table struct {
	objects []Descriptor
}

// NewTable builds a Table over objects. The slice is borrowed, not copied:
// callers must not mutate it afterward.
func NewTable(objects []Descriptor) *Table {
	return &Table{objects: objects}
}

// ByID returns the descriptor with the given id, or nil if none matches.
func (t *Table) ByID(id uint16) *Descriptor {
	for i := range t.objects {
		if t.objects[i].ID == id {
			return &t.objects[i]
		}
	}
	return nil
}

// ByName returns the descriptor whose name is exactly equal to name (no
// prefix matching: "foo" must not match a stored "fooBar").
func (t *Table) ByName(name string) *Descriptor {
	for i := range t.objects {
		if t.objects[i].Name == name {
			return &t.objects[i]
		}
	}
	return nil
}

// InCategory iterates the objects belonging to category in table order,
// calling fn for each. fn returning false stops iteration early.
func (t *Table) InCategory(category Category, fn func(*Descriptor) bool) {
	for i := range t.objects {
		if t.objects[i].Category == category {
			if !fn(&t.objects[i]) {
				return
			}
		}
	}
}
