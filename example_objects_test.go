package thingset

// scenarioFixture bundles the object table used by the literal end-to-end
// scenarios together with pointers to the backing values, so tests can
// assert on post-write state directly.
type scenarioFixture struct {
	table *Table

	manufacturer string
	i32          int32
	f32          float32
	i32Output    int32
	loadEnTarget bool
	usbEnTarget  bool
	maintenance  bool

	dummyCalls int
}

// newScenarioFixture reproduces the object table named by spec §8's
// literal scenarios: i32/f32 in conf, dummy exec, loadEnTarget/
// usbEnTarget in input, Manufacturer in info at id 0x19, plus a
// read-only i32_output in output and a read-only maintenance flag (no
// write bit at any auth level) used to exercise access-gating beyond what
// a single write-auth bit models.
func newScenarioFixture() *scenarioFixture {
	f := &scenarioFixture{
		manufacturer: "Libre Solar",
	}
	f.table = NewTable([]Descriptor{
		{ID: 0x19, Name: "Manufacturer", Category: CategoryInfo, Access: AccessRead, Type: TypeText,
			Value: TextSlot{Ptr: &f.manufacturer, Capacity: 32}},
		{ID: 0x6004, Name: "i32", Category: CategoryConf, Access: AccessRead | AccessWrite, Type: TypeInt32,
			Value: Int32Slot{Ptr: &f.i32}},
		{ID: 0x6007, Name: "f32", Category: CategoryConf, Access: AccessRead | AccessWrite, Type: TypeFloat32, Detail: 1,
			Value: Float32Slot{Ptr: &f.f32}},
		{ID: 0x6008, Name: "secret_user", Category: CategoryConf, Access: AccessWriteAuth, Type: TypeInt32,
			Value: Int32Slot{Ptr: new(int32)}},
		{ID: 0x6009, Name: "maintenance", Category: CategoryConf, Access: AccessRead, Type: TypeBool,
			Value: BoolSlot{Ptr: &f.maintenance}},
		{ID: 0x5001, Name: "dummy", Category: CategoryExec, Access: AccessExec, Type: TypeExec,
			Exec: func() { f.dummyCalls++ }},
		{ID: 0x7001, Name: "loadEnTarget", Category: CategoryInput, Access: AccessRead, Type: TypeBool,
			Value: BoolSlot{Ptr: &f.loadEnTarget}},
		{ID: 0x7002, Name: "usbEnTarget", Category: CategoryInput, Access: AccessRead, Type: TypeBool,
			Value: BoolSlot{Ptr: &f.usbEnTarget}},
		{ID: 0x8001, Name: "i32_output", Category: CategoryOutput, Access: AccessRead, Type: TypeInt32,
			Value: Int32Slot{Ptr: &f.i32Output}},
	})
	return f
}

func newScenarioEngine() (*scenarioFixture, *Engine) {
	f := newScenarioFixture()
	e := NewEngine(f.table, nil, "user123", "maker456")
	return f, e
}
