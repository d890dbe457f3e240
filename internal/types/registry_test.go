package types

import "testing"

func TestClassOwnFieldOverwritesOnRedeclare(t *testing.T) {
	c := NewClass("Pet")
	c.AddField("name", String)
	c.AddField("name", Optional(String))
	ty, ok := c.OwnField("name")
	if !ok || ty.String() != Optional(String).String() {
		t.Fatalf("expected last declaration to win, got %v", ty)
	}
	if len(c.order) != 1 {
		t.Fatalf("expected field order to stay length 1, got %d", len(c.order))
	}
}

func TestFieldAnnotationWalksParentChain(t *testing.T) {
	r := NewRegistry()
	animal := NewClass("Animal")
	animal.AddField("name", String)
	r.Classes["Animal"] = animal

	dog := NewClass("Dog")
	dog.Parent = "Animal"
	dog.AddField("breed", String)
	r.Classes["Dog"] = dog

	if ty, ok := r.FieldAnnotation("Dog", "breed"); !ok || ty != String {
		t.Fatalf("expected own field 'breed', got %v, %v", ty, ok)
	}
	if ty, ok := r.FieldAnnotation("Dog", "name"); !ok || ty != String {
		t.Fatalf("expected inherited field 'name', got %v, %v", ty, ok)
	}
	if _, ok := r.FieldAnnotation("Dog", "nonexistent"); ok {
		t.Fatal("expected lookup miss for undeclared field")
	}
}

func TestFieldAnnotationBoundsCycles(t *testing.T) {
	r := NewRegistry()
	a := NewClass("A")
	a.Parent = "B"
	b := NewClass("B")
	b.Parent = "A"
	r.Classes["A"] = a
	r.Classes["B"] = b

	if _, ok := r.FieldAnnotation("A", "missing"); ok {
		t.Fatal("expected lookup miss, not infinite loop")
	}
}

func TestRegistryExtendMergesFieldsLastWriterWins(t *testing.T) {
	r1 := NewRegistry()
	dog := NewClass("Dog")
	dog.AddField("name", String)
	r1.Classes["Dog"] = dog

	r2 := NewRegistry()
	dogExt := NewClass("Dog")
	dogExt.AddField("age", Number)
	r2.Classes["Dog"] = dogExt
	r2.Enums["Color"] = true

	r1.Extend(r2)

	merged := r1.Classes["Dog"]
	if _, ok := merged.OwnField("name"); !ok {
		t.Fatal("expected original field 'name' to survive merge")
	}
	if _, ok := merged.OwnField("age"); !ok {
		t.Fatal("expected merged-in field 'age'")
	}
	if !r1.Enums["Color"] {
		t.Fatal("expected enum 'Color' to be merged in")
	}
}

func TestRegistryExtendFlagsAreLastWriterWinsNotRatchet(t *testing.T) {
	r1 := NewRegistry()
	dog := NewClass("Dog")
	dog.Exact = true
	dog.Parent = "Animal"
	r1.Classes["Dog"] = dog

	r2 := NewRegistry()
	dogRedeclared := NewClass("Dog")
	r2.Classes["Dog"] = dogRedeclared

	r1.Extend(r2)

	merged := r1.Classes["Dog"]
	if merged.Exact {
		t.Fatal("expected a later non-exact redeclaration to clear Exact, not leave it ratcheted true")
	}
	if merged.Parent != "" {
		t.Fatalf("expected a later parentless redeclaration to clear Parent, got %q", merged.Parent)
	}
}

func TestAsRecordFlattensInheritedFields(t *testing.T) {
	r := NewRegistry()
	animal := NewClass("Animal")
	animal.Exact = true
	animal.AddField("name", String)
	r.Classes["Animal"] = animal

	dog := NewClass("Dog")
	dog.Parent = "Animal"
	dog.AddField("breed", String)
	r.Classes["Dog"] = dog

	rec, ok := r.AsRecord("Dog")
	if !ok {
		t.Fatal("expected AsRecord to succeed")
	}
	if _, ok := rec.Field("name"); !ok {
		t.Fatal("expected flattened record to include inherited field 'name'")
	}
	if _, ok := rec.Field("breed"); !ok {
		t.Fatal("expected flattened record to include own field 'breed'")
	}
	if rec.Exact {
		t.Fatal("expected exactness to come from the requested class, not an ancestor")
	}
}
