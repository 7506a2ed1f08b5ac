package converter

import "github.com/iliyamo/booth-data/internal/model"

// boothIndex maps circle names to booths and remembers the order in which
// each circle was first seen.  Replacing a circle keeps its original slot.
type boothIndex struct {
	order    []string
	byCircle map[string]*model.Booth
}

func newBoothIndex() *boothIndex {
	return &boothIndex{byCircle: make(map[string]*model.Booth)}
}

func (ix *boothIndex) put(b *model.Booth) {
	if _, ok := ix.byCircle[b.Circle]; !ok {
		ix.order = append(ix.order, b.Circle)
	}
	ix.byCircle[b.Circle] = b
}

func (ix *boothIndex) get(circle string) (*model.Booth, bool) {
	b, ok := ix.byCircle[circle]
	return b, ok
}

// booths returns the booths in first-insertion order.
func (ix *boothIndex) booths() []model.Booth {
	out := make([]model.Booth, 0, len(ix.order))
	for _, circle := range ix.order {
		out = append(out, *ix.byCircle[circle])
	}
	return out
}
