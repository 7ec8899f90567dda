package env

import (
	"testing"

	"github.com/nomutin/Push2D/physics"
)

func placement(red, green physics.Vec2) Info {
	return Info{
		Width:  300,
		Height: 225,
		Objects: []ObjectInfo{
			{Color: Red, Radius: 30, Position: red},
			{Color: Green, Radius: 30, Position: green},
		},
	}
}

func TestCornerPairReward(t *testing.T) {
	reward := CornerPairReward(TopLeft, TopRight)

	cases := []struct {
		name string
		info Info
		want float64
	}{
		{
			name: "both in place",
			info: placement(physics.V(40, 40), physics.V(260, 40)),
			want: 1.0,
		},
		{
			name: "only red in place",
			info: placement(physics.V(40, 40), physics.V(150, 110)),
			want: 0.5,
		},
		{
			name: "only green in place",
			info: placement(physics.V(150, 110), physics.V(260, 40)),
			want: 0.5,
		},
		{
			name: "none in place",
			info: placement(physics.V(150, 110), physics.V(150, 60)),
			want: 0.0,
		},
		{
			name: "swapped corners score nothing",
			info: placement(physics.V(260, 40), physics.V(40, 40)),
			want: 0.0,
		},
	}
	for _, c := range cases {
		if got := reward(c.info); got != c.want {
			t.Errorf("%s: reward = %f, want %f", c.name, got, c.want)
		}
	}
}

func TestCornerMarginUsesRadius(t *testing.T) {
	info := placement(physics.V(59, 59), physics.V(260, 40))
	// radius 30 + margin 30 = 60: position 59 is inside, 61 is not
	if !ObjectInCorner(info.Objects[0], info, TopLeft) {
		t.Errorf("59,59 should count as top left for radius 30")
	}
	info.Objects[0].Position = physics.V(61, 61)
	if ObjectInCorner(info.Objects[0], info, TopLeft) {
		t.Errorf("61,61 should be outside the top left margin")
	}
}

func TestConstantReward(t *testing.T) {
	if got := ConstantReward(1.0)(Info{}); got != 1.0 {
		t.Errorf("constant reward should always pay, got %f", got)
	}
}

func TestRegistryCoversAllCornerPairs(t *testing.T) {
	corners := map[Corner]string{
		TopLeft:     "top-left",
		TopRight:    "top-right",
		BottomLeft:  "bottom-left",
		BottomRight: "bottom-right",
	}
	count := 0
	for red, redName := range corners {
		for green, greenName := range corners {
			if red == green {
				continue
			}
			name := "red-" + redName + "-green-" + greenName
			reward, ok := RewardByName(name)
			if !ok {
				t.Errorf("reward %q not registered", name)
				continue
			}
			count++
			// the registered function must pay for its own placement
			info := placement(cornerPosition(red), cornerPosition(green))
			if got := reward(info); got != 1.0 {
				t.Errorf("%s: reward = %f, want 1.0", name, got)
			}
		}
	}
	if count != 12 {
		t.Errorf("expected 12 corner pair rewards, got %d", count)
	}
}

func cornerPosition(c Corner) physics.Vec2 {
	switch c {
	case TopLeft:
		return physics.V(40, 40)
	case TopRight:
		return physics.V(260, 40)
	case BottomLeft:
		return physics.V(40, 185)
	default:
		return physics.V(260, 185)
	}
}

func TestRewardByName(t *testing.T) {
	if _, ok := RewardByName(""); !ok {
		t.Errorf("empty name should resolve to the constant reward")
	}
	if _, ok := RewardByName("red-top-left-green-top-right"); !ok {
		t.Errorf("registered name should resolve")
	}
	if _, ok := RewardByName("nope"); ok {
		t.Errorf("unknown name should not resolve")
	}
}

func TestScenarioValidation(t *testing.T) {
	s := RedAndGreen()
	s.Reward = "nope"
	if _, err := NewEnv(s); err == nil {
		t.Errorf("unknown reward name should fail validation")
	}
	s = RedAndGreen()
	s.FPS = 0
	if _, err := NewEnv(s); err == nil {
		t.Errorf("zero fps should fail validation")
	}
}
