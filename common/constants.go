package common

const (
	// CellWidth is the side of one pathfinding grid cell in world units.
	CellWidth = 25

	// BucketWidth and BucketHeight size the coarse wall index used for collision.
	BucketWidth  = 100
	BucketHeight = 100
)
