package imagesynthesis

import "time"

// AmbienceBand is a time-of-day lighting treatment. Start is inclusive and End
// exclusive, in whole hours; a band with End <= Start wraps past midnight.
type AmbienceBand struct {
	Name   string
	Start  int
	End    int
	Visual string
}

var ambienceBands = []AmbienceBand{
	{Name: "早晨", Start: 6, End: 11, Visual: "柔和的粉彩天空，晨光温柔"},
	{Name: "中午", Start: 11, End: 14, Visual: "明亮的阳光，色彩鲜明"},
	{Name: "下午", Start: 14, End: 17, Visual: "温暖的光线，金色调"},
	{Name: "日落", Start: 17, End: 19, Visual: "橙粉色的针织日落，晚霞绚丽"},
	{Name: "傍晚", Start: 19, End: 21, Visual: "针织玩偶夜景，点缀着小巧的针织灯，天空渐暗"},
	{Name: "夜晚", Start: 21, End: 6, Visual: "深蓝色的针织天空 + 毛毡星星，宁静夜色"},
}

// AmbienceBands returns the six bands in display order.
func AmbienceBands() []AmbienceBand {
	out := make([]AmbienceBand, len(ambienceBands))
	copy(out, ambienceBands)
	return out
}

func (b AmbienceBand) contains(hour int) bool {
	if b.End > b.Start {
		return hour >= b.Start && hour < b.End
	}
	return hour >= b.Start || hour < b.End
}

// BandFor returns the band covering t's hour.
func BandFor(t time.Time) AmbienceBand {
	h := t.Hour()
	for _, b := range ambienceBands {
		if b.contains(h) {
			return b
		}
	}
	return ambienceBands[len(ambienceBands)-1]
}
