package types

const (
	KB = 1 << 10
	MB = 1 << 20
	GB = 1 << 30
)
