package determinism

import (
	"slices"
	"testing"
)

func TestSortedKeys(t *testing.T) {
	m := map[string]bool{"realTimeChat": true, "analytics": false, "userAuth": true}
	got := SortedKeys(m)
	want := []string{"analytics", "realTimeChat", "userAuth"}
	if !slices.Equal(got, want) {
		t.Errorf("SortedKeys = %v, want %v", got, want)
	}
}

func TestRangeMapSortedStops(t *testing.T) {
	var seen []int
	RangeMapSorted(map[int]string{3: "c", 1: "a", 2: "b"}, func(k int, _ string) bool {
		seen = append(seen, k)
		return k < 2
	})
	if !slices.Equal(seen, []int{1, 2}) {
		t.Errorf("visited %v", seen)
	}
}

func TestFingerprintIsStable(t *testing.T) {
	a := map[string]bool{"b": true, "a": false}
	b := map[string]bool{"a": false, "b": true}

	ha, err := Fingerprint("catalog", a)
	if err != nil {
		t.Fatal(err)
	}
	hb, err := Fingerprint("catalog", b)
	if err != nil {
		t.Fatal(err)
	}
	if ha != hb {
		t.Errorf("equal maps hashed differently: %s vs %s", ha.Hex(), hb.Hex())
	}

	hc, _ := Fingerprint("catalog", map[string]bool{"a": true, "b": true})
	if ha == hc {
		t.Error("different values hashed equally")
	}
	if len(ha.Short()) != 12 || ha.String() != ha.Short() {
		t.Errorf("Short = %q", ha.Short())
	}
}

func TestFingerprintRejectsUnencodable(t *testing.T) {
	if _, err := Fingerprint(func() {}); err == nil {
		t.Error("expected an error for a func value")
	}
}
