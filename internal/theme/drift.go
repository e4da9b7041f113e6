package theme

import (
	"encoding/json"
	"fmt"
)

// Drift is one structural difference between the committed theme document and
// a fresh regeneration. Got is the committed side, Want the regenerated side.
type Drift struct {
	Path string
	Got  string
	Want string
}

func (d Drift) String() string {
	return fmt.Sprintf("%s: have %s, regeneration produces %s", d.Path, d.Got, d.Want)
}

// CompareDocuments walks both documents and reports every structural
// difference per path. Key order and number formatting do not count as drift;
// missing keys, extra keys, and differing values do.
func CompareDocuments(current, regenerated *Object) []Drift {
	var drifts []Drift
	compareValues(current, regenerated, "", &drifts)
	return drifts
}

func compareValues(got, want Value, path string, drifts *[]Drift) {
	switch g := got.(type) {
	case *Object:
		w, ok := want.(*Object)
		if !ok {
			*drifts = append(*drifts, Drift{Path: path, Got: formatValue(got), Want: formatValue(want)})
			return
		}
		for _, key := range g.SortedKeys() {
			gv, _ := g.Get(key)
			wv, ok := w.Get(key)
			if !ok {
				*drifts = append(*drifts, Drift{Path: joinPath(path, key), Got: formatValue(gv), Want: "(absent)"})
				continue
			}
			compareValues(gv, wv, joinPath(path, key), drifts)
		}
		for _, key := range w.SortedKeys() {
			if _, ok := g.Get(key); !ok {
				wv, _ := w.Get(key)
				*drifts = append(*drifts, Drift{Path: joinPath(path, key), Got: "(absent)", Want: formatValue(wv)})
			}
		}
	case []Value:
		w, ok := want.([]Value)
		if !ok {
			*drifts = append(*drifts, Drift{Path: path, Got: formatValue(got), Want: formatValue(want)})
			return
		}
		n := len(g)
		if len(w) < n {
			n = len(w)
		}
		for i := 0; i < n; i++ {
			compareValues(g[i], w[i], fmt.Sprintf("%s[%d]", path, i), drifts)
		}
		for i := n; i < len(g); i++ {
			*drifts = append(*drifts, Drift{Path: fmt.Sprintf("%s[%d]", path, i), Got: formatValue(g[i]), Want: "(absent)"})
		}
		for i := n; i < len(w); i++ {
			*drifts = append(*drifts, Drift{Path: fmt.Sprintf("%s[%d]", path, i), Got: "(absent)", Want: formatValue(w[i])})
		}
	case json.Number:
		if !numbersEqual(g, want) {
			*drifts = append(*drifts, Drift{Path: path, Got: formatValue(got), Want: formatValue(want)})
		}
	default:
		if got != want {
			*drifts = append(*drifts, Drift{Path: path, Got: formatValue(got), Want: formatValue(want)})
		}
	}
}

// numbersEqual compares numerically so that 700 and 700.0 are not drift.
func numbersEqual(got json.Number, want Value) bool {
	w, ok := want.(json.Number)
	if !ok {
		return false
	}
	gf, err1 := got.Float64()
	wf, err2 := w.Float64()
	if err1 != nil || err2 != nil {
		return got.String() == w.String()
	}
	return gf == wf
}

func formatValue(v Value) string {
	switch t := v.(type) {
	case *Object:
		return fmt.Sprintf("(object with %d keys)", t.Len())
	case []Value:
		return fmt.Sprintf("(array of %d)", len(t))
	case string:
		return fmt.Sprintf("%q", t)
	case json.Number:
		return t.String()
	case bool:
		return fmt.Sprintf("%t", t)
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%v", t)
	}
}
