package env

// RewardFunc scores the situation after a step from the object info
type RewardFunc func(info Info) float64

// ConstantReward pays the same amount every step
func ConstantReward(value float64) RewardFunc {
	return func(Info) float64 {
		return value
	}
}

// sideMargin is the slack added to the circle radius when deciding
// whether a circle has reached a side of the field
const sideMargin = 30

// Corner of the field
type Corner int

const (
	TopLeft Corner = iota
	TopRight
	BottomLeft
	BottomRight
)

func objectAtLeft(o ObjectInfo, _ Info) bool {
	return o.Position.X < o.Radius+sideMargin
}

func objectAtRight(o ObjectInfo, info Info) bool {
	return o.Position.X > info.Width-o.Radius-sideMargin
}

func objectAtTop(o ObjectInfo, _ Info) bool {
	return o.Position.Y < o.Radius+sideMargin
}

func objectAtBottom(o ObjectInfo, info Info) bool {
	return o.Position.Y > info.Height-o.Radius-sideMargin
}

// ObjectInCorner reports whether the object sits in the given corner,
// within the side margin.
func ObjectInCorner(o ObjectInfo, info Info, c Corner) bool {
	switch c {
	case TopLeft:
		return objectAtTop(o, info) && objectAtLeft(o, info)
	case TopRight:
		return objectAtTop(o, info) && objectAtRight(o, info)
	case BottomLeft:
		return objectAtBottom(o, info) && objectAtLeft(o, info)
	case BottomRight:
		return objectAtBottom(o, info) && objectAtRight(o, info)
	}
	return false
}

func findObject(info Info, color Color) (ObjectInfo, bool) {
	for _, o := range info.Objects {
		if o.Color == color {
			return o, true
		}
	}
	if len(info.Objects) > 0 {
		return info.Objects[0], true
	}
	return ObjectInfo{}, false
}

// CornerPairReward grants 0.5 for the red circle sitting in redCorner and
// another 0.5 for the green circle sitting in greenCorner.
func CornerPairReward(redCorner, greenCorner Corner) RewardFunc {
	return func(info Info) float64 {
		reward := 0.0
		if red, ok := findObject(info, Red); ok && ObjectInCorner(red, info, redCorner) {
			reward += 0.5
		}
		if green, ok := findObject(info, Green); ok && ObjectInCorner(green, info, greenCorner) {
			reward += 0.5
		}
		return reward
	}
}

// rewardRegistry resolves the reward names used in scenario files. The
// corner pair entries cover the red-and-green placements.
var rewardRegistry = map[string]RewardFunc{
	"constant":                           ConstantReward(1.0),
	"red-top-left-green-top-right":       CornerPairReward(TopLeft, TopRight),
	"red-top-right-green-top-left":       CornerPairReward(TopRight, TopLeft),
	"red-top-left-green-bottom-left":     CornerPairReward(TopLeft, BottomLeft),
	"red-bottom-left-green-top-left":     CornerPairReward(BottomLeft, TopLeft),
	"red-top-left-green-bottom-right":    CornerPairReward(TopLeft, BottomRight),
	"red-bottom-right-green-top-left":    CornerPairReward(BottomRight, TopLeft),
	"red-top-right-green-bottom-right":   CornerPairReward(TopRight, BottomRight),
	"red-bottom-right-green-top-right":   CornerPairReward(BottomRight, TopRight),
	"red-top-right-green-bottom-left":    CornerPairReward(TopRight, BottomLeft),
	"red-bottom-left-green-top-right":    CornerPairReward(BottomLeft, TopRight),
	"red-bottom-left-green-bottom-right": CornerPairReward(BottomLeft, BottomRight),
	"red-bottom-right-green-bottom-left": CornerPairReward(BottomRight, BottomLeft),
}

// RewardByName looks up a registered reward function, falling back to the
// constant reward for the empty name.
func RewardByName(name string) (RewardFunc, bool) {
	if name == "" {
		return ConstantReward(1.0), true
	}
	r, ok := rewardRegistry[name]
	return r, ok
}
