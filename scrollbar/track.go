package scrollbar

import "math"

// Orientation is the axis along which a scrollbar moves.
type Orientation uint8

const (
	Vertical Orientation = iota
	Horizontal
)

// Track is the strip the thumb moves along, in cells on a single axis.
type Track struct {
	Start float64
	End   float64
}

// NewTrack returns the track starting at start with the given length.
func NewTrack(start, length float64) Track {
	return Track{Start: start, End: start + length}
}

// Size returns the length of the track.
func (t Track) Size() float64 {
	return t.End - t.Start
}

// ThumbPosition maps a pointer offset, relative to the track start, to the
// travel fraction of the thumb. The thumb's center follows the pointer: an
// offset of thumbSize/2 maps to 0 and Size()-thumbSize/2 maps to 1.
func (t Track) ThumbPosition(pointer, thumbSize float64) float64 {
	travel := t.Size() - thumbSize
	if travel <= 0 || math.IsNaN(pointer) {
		return 0
	}
	return clamp01((pointer - thumbSize/2) / travel)
}

// RawPosition maps a pointer offset to a fraction of the whole track without
// accounting for the thumb.
func (t Track) RawPosition(pointer float64) float64 {
	size := t.Size()
	if size <= 0 || math.IsNaN(pointer) {
		return 0
	}
	return clamp01(pointer / size)
}

// ThumbTravelPercent returns the travel percent used to place the thumb.
// While an interaction is in progress its percent wins; otherwise the
// scroll-driven travel is re-normalized by the free track fraction so the
// thumb reaches the end of the track.
func ThumbTravelPercent(v Value, interaction float64) float64 {
	if !math.IsNaN(interaction) {
		return max(interaction, 0)
	}
	trackSize := v.ThumbTrackSize()
	if trackSize == 0 {
		return max(v.ThumbTravel, 0)
	}
	return max(min(v.ThumbTravel/trackSize, 1), 0)
}

// ThumbOffset returns the distance of the thumb's leading edge from the track
// start.
func ThumbOffset(track Track, thumbSize, travelPercent float64) float64 {
	return max((track.Size()-thumbSize)*travelPercent, 0)
}

// ThumbLength returns the thumb length on track. Dynamic thumbs follow the
// visible fraction of the content but never shrink below minLength; static
// thumbs use fixedLength. The result never exceeds the track.
func ThumbLength(v Value, track Track, dynamic bool, minLength, fixedLength float64) float64 {
	size := max(track.Size(), 0)
	length := fixedLength
	if dynamic {
		length = max(v.ThumbSize*size, minLength)
	}
	return min(max(length, 0), size)
}
