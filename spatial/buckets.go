package spatial

import "github.com/milk9111/ashvale/common"

// BucketKey addresses one coarse bucket.
type BucketKey struct {
	X int
	Y int
}

// Buckets indexes static objects by the coarse bucket holding their top-left
// corner. Queries scan a fixed neighbourhood of buckets, so their cost does
// not grow with the total number of indexed objects.
type Buckets[ID comparable] struct {
	width  int
	height int
	cells  map[BucketKey][]ID
	count  int
}

func NewBuckets[ID comparable](width, height int) *Buckets[ID] {
	if width <= 0 || height <= 0 {
		panic("spatial: bucket size must be positive")
	}
	return &Buckets[ID]{width: width, height: height, cells: make(map[BucketKey][]ID)}
}

// KeyOf returns the bucket containing p.
func (b *Buckets[ID]) KeyOf(p common.Position) BucketKey {
	return BucketKey{X: floorDiv(p.X, b.width), Y: floorDiv(p.Y, b.height)}
}

// Add indexes id at position p.
func (b *Buckets[ID]) Add(id ID, p common.Position) {
	key := b.KeyOf(p)
	b.cells[key] = append(b.cells[key], id)
	b.count++
}

// Remove drops id from the bucket containing p. It returns false when id was
// not indexed there.
func (b *Buckets[ID]) Remove(id ID, p common.Position) bool {
	key := b.KeyOf(p)
	bucket := b.cells[key]
	for i := range bucket {
		if bucket[i] != id {
			continue
		}
		bucket = append(bucket[:i], bucket[i+1:]...)
		if len(bucket) == 0 {
			delete(b.cells, key)
		} else {
			b.cells[key] = bucket
		}
		b.count--
		return true
	}
	return false
}

// Bucket returns the members of one bucket.
func (b *Buckets[ID]) Bucket(key BucketKey) []ID {
	return b.cells[key]
}

// Near returns everything in the 3x3 block of buckets centred on p's bucket.
func (b *Buckets[ID]) Near(p common.Position) []ID {
	center := b.KeyOf(p)
	return b.collect(center.X-1, center.Y-1, center.X+1, center.Y+1)
}

// InRange returns everything in buckets overlapping r, widened by one bucket
// on each side so objects anchored just outside r but extending into it are
// included. Used for viewport-sized queries.
func (b *Buckets[ID]) InRange(r common.Rect) []ID {
	lo := b.KeyOf(r.TopLeft())
	hi := b.KeyOf(common.Position{X: r.X + r.W, Y: r.Y + r.H})
	return b.collect(lo.X-1, lo.Y-1, hi.X+1, hi.Y+1)
}

func (b *Buckets[ID]) collect(x0, y0, x1, y1 int) []ID {
	var out []ID
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			out = append(out, b.cells[BucketKey{X: x, Y: y}]...)
		}
	}
	return out
}

// Len returns the number of indexed objects.
func (b *Buckets[ID]) Len() int {
	return b.count
}
