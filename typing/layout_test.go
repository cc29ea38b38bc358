package typing

import "testing"

func TestLayoutOfScalars(t *testing.T) {
	for _, tc := range []struct {
		name string
		typ  Type
	}{
		{"int", Int},
		{"bool", Bool},
	} {
		l := LayoutOf(tc.typ)
		if l.Slots != 1 || l.Aggregate || l.ArrayLike {
			t.Errorf("%s: got %+v, want a single scalar slot", tc.name, l)
		}
	}
}

func TestLayoutOfRef(t *testing.T) {
	rt := &RefType{Elem: &ArrayType{Elem: Int, Len: 100}, Mut: true}
	l := LayoutOf(rt)
	if l.Slots != 1 || l.Aggregate {
		t.Errorf("got %+v, want a single non-aggregate pointer slot regardless of referent size", l)
	}
}

func TestLayoutOfTuple(t *testing.T) {
	tt := &TupleType{Elems: []Type{Int, Bool, Int}}
	l := LayoutOf(tt)
	if l.Slots != 3 || !l.Aggregate || l.ArrayLike {
		t.Errorf("got %+v, want 3 slots, aggregate, not array-like", l)
	}
}

func TestLayoutOfArray(t *testing.T) {
	at := &ArrayType{Elem: Int, Len: 4}
	l := LayoutOf(at)
	if l.Slots != 4 || !l.Aggregate || !l.ArrayLike {
		t.Errorf("got %+v, want 4 slots, aggregate, array-like", l)
	}
}

func TestLayoutOfArrayOfTuples(t *testing.T) {
	tt := &TupleType{Elems: []Type{Int, Int}}
	at := &ArrayType{Elem: tt, Len: 3}
	l := LayoutOf(at)
	if l.Slots != 6 {
		t.Errorf("got %d slots, want 6 (3 elements * 2 slots each)", l.Slots)
	}
}

func TestLayoutOfStruct(t *testing.T) {
	st := &StructType{Name: "Point", Fields: []FieldDef{
		{Name: "x", Type: Int},
		{Name: "y", Type: Int},
		{Name: "flag", Type: Bool},
	}}

	l := LayoutOf(st)
	if l.Slots != 3 || !l.Aggregate {
		t.Errorf("got %+v, want 3 slots, aggregate", l)
	}
}

func TestLayoutOfStructIsArrayLikeWhenAFieldIs(t *testing.T) {
	st := &StructType{Name: "Wrapper", Fields: []FieldDef{
		{Name: "tag", Type: Int},
		{Name: "data", Type: &ArrayType{Elem: Int, Len: 2}},
	}}

	l := LayoutOf(st)
	if !l.ArrayLike {
		t.Errorf("got %+v, want ArrayLike propagated from the array field", l)
	}
}

func TestLayoutOfIsIdempotent(t *testing.T) {
	tt := &TupleType{Elems: []Type{Int, Int, Bool}}
	first := LayoutOf(tt)
	second := LayoutOf(tt)
	if first != second {
		t.Errorf("LayoutOf is not idempotent: %+v != %+v", first, second)
	}
}

func TestFieldOffset(t *testing.T) {
	fields := []Type{Int, Bool, &TupleType{Elems: []Type{Int, Int}}, Int}

	cases := []struct {
		idx  int
		want int
	}{
		{0, 0},
		{1, 1},
		{2, 2},
		{3, 4}, // 1 + 1 + 2
	}

	for _, c := range cases {
		if got := FieldOffset(fields, c.idx); got != c.want {
			t.Errorf("FieldOffset(fields, %d) = %d, want %d", c.idx, got, c.want)
		}
	}
}

func TestTupleFieldOffset(t *testing.T) {
	tt := &TupleType{Elems: []Type{Bool, Int, Int}}
	if got := TupleFieldOffset(tt, 2); got != 2 {
		t.Errorf("got offset %d, want 2", got)
	}
}

func TestStructFieldOffset(t *testing.T) {
	st := &StructType{Name: "Pair", Fields: []FieldDef{
		{Name: "a", Type: &TupleType{Elems: []Type{Int, Int}}},
		{Name: "b", Type: Bool},
	}}

	if got := StructFieldOffset(st, 1); got != 2 {
		t.Errorf("got offset %d, want 2", got)
	}
}

func TestIsAggregate(t *testing.T) {
	agg := []Type{
		&TupleType{Elems: []Type{Int}},
		&StructType{Name: "S", Fields: []FieldDef{{Name: "f", Type: Int}}},
		&ArrayType{Elem: Int, Len: 1},
	}
	for _, typ := range agg {
		if !IsAggregate(typ) {
			t.Errorf("%s: expected IsAggregate to report true", typ.Repr())
		}
	}

	scalar := []Type{Int, Bool, &RefType{Elem: Int}}
	for _, typ := range scalar {
		if IsAggregate(typ) {
			t.Errorf("%s: expected IsAggregate to report false", typ.Repr())
		}
	}
}

func TestNeedsByValueAndByRef(t *testing.T) {
	if !NeedsByValue(Int) || !NeedsByValue(Bool) {
		t.Error("scalars should be passable by value")
	}

	rt := &RefType{Elem: Int}
	if !NeedsByValue(rt) {
		t.Error("a reference is a single pointer register, passable by value")
	}
	if !NeedsByRef(rt) {
		t.Error("a reference's value is already an address, so it needs-by-ref by definition")
	}

	agg := &TupleType{Elems: []Type{Int, Int}}
	if NeedsByValue(agg) {
		t.Error("an aggregate cannot be passed as a single register")
	}
	if !NeedsByRef(agg) {
		t.Error("an aggregate must be addressed through a pointer")
	}
}

func TestDeref(t *testing.T) {
	if got := Deref(Int); got != Int {
		t.Errorf("Deref of a non-reference should return it unchanged, got %v", got)
	}

	rt := &RefType{Elem: Bool}
	if got := Deref(rt); got != Bool {
		t.Errorf("Deref(%s) = %v, want Bool", rt.Repr(), got)
	}
}

func TestIsRefType(t *testing.T) {
	if IsRefType(Int) {
		t.Error("Int should not be a ref type")
	}
	if !IsRefType(&RefType{Elem: Int}) {
		t.Error("&RefType should be a ref type")
	}
}
