package entity

import (
	"encoding/json"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestPropertiesOrder(t *testing.T) {
	p := NewProperties()
	p.Set("occupation", String("queen"))
	p.Set("age", Int(45))
	p.Set("traits", Strings("wise", "stern"))

	want := []string{"occupation", "age", "traits"}
	if got := p.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}

	// Overwriting keeps the original position.
	p.Set("age", Int(46))
	if got := p.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() after overwrite = %v, want %v", got, want)
	}
	if v, _ := p.Get("age"); !v.Equal(Int(46)) {
		t.Errorf("Get(age) = %v, want 46", v)
	}

	// Deleting removes the key; re-adding appends at the end.
	if !p.Delete("occupation") {
		t.Fatal("Delete(occupation) = false")
	}
	p.Set("occupation", String("regent"))
	want = []string{"age", "traits", "occupation"}
	if got := p.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() after delete and re-add = %v, want %v", got, want)
	}
}

func TestPropertiesMerge(t *testing.T) {
	base := NewProperties()
	base.Set("occupation", String("queen"))
	base.Set("age", Int(45))

	patch := NewProperties()
	patch.Set("age", Int(46))
	patch.Set("home", String("Eldoria"))

	base.Merge(patch)

	if got := base.Keys(); !reflect.DeepEqual(got, []string{"occupation", "age", "home"}) {
		t.Errorf("Keys() = %v", got)
	}
	if v, _ := base.Get("age"); !v.Equal(Int(46)) {
		t.Errorf("patched age = %v, want 46", v)
	}
	if v, _ := base.Get("occupation"); !v.Equal(String("queen")) {
		t.Errorf("retained key mutated: %v", v)
	}
}

func TestPropertiesCloneIsDeep(t *testing.T) {
	nested := NewProperties()
	nested.Set("metal", String("silver"))

	p := NewProperties()
	p.Set("forged", Map(nested))

	clone := p.Clone()
	nested.Set("metal", String("iron"))

	cloneVal, _ := clone.Get("forged")
	cloneNested, _ := cloneVal.AsMap()
	if v, _ := cloneNested.Get("metal"); !v.Equal(String("silver")) {
		t.Errorf("clone shares nested mapping: %v", v)
	}
}

func TestPropertiesNilReads(t *testing.T) {
	var p *Properties
	if p.Len() != 0 {
		t.Errorf("nil Len() = %d", p.Len())
	}
	if _, ok := p.Get("x"); ok {
		t.Error("nil Get() reported ok")
	}
	if p.Delete("x") {
		t.Error("nil Delete() reported true")
	}
	if !p.Equal(NewProperties()) {
		t.Error("nil should equal empty")
	}
}

func TestPropertiesYAMLOrderRoundTrip(t *testing.T) {
	input := `occupation: queen
age: 45
traits:
  - wise
  - stern
forged:
  metal: silver
  year: 812
`
	var p Properties
	if err := yaml.Unmarshal([]byte(input), &p); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	want := []string{"occupation", "age", "traits", "forged"}
	if got := p.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("decoded key order = %v, want %v", got, want)
	}

	data, err := yaml.Marshal(&p)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var again Properties
	if err := yaml.Unmarshal(data, &again); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !again.Equal(&p) {
		t.Errorf("round trip changed bag:\n%s", data)
	}
}

func TestPropertiesJSONOrderRoundTrip(t *testing.T) {
	input := `{"occupation":"queen","age":45,"traits":["wise","stern"],"forged":{"metal":"silver"}}`

	var p Properties
	if err := json.Unmarshal([]byte(input), &p); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	want := []string{"occupation", "age", "traits", "forged"}
	if got := p.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("decoded key order = %v, want %v", got, want)
	}

	data, err := json.Marshal(&p)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != input {
		t.Errorf("Marshal = %s, want %s", data, input)
	}
}
