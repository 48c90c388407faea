package imagesynthesis

import (
	"fmt"
	"strings"
	"time"
)

// Input is everything the image prompt is conditioned on.
type Input struct {
	City     string
	At       time.Time
	Landmark string
	Weather  string
}

// DateLabel is the date as shown in the image, e.g. 2025.01.31.
func (in Input) DateLabel() string {
	return in.At.Format("2006.01.02")
}

// TimeOfDay is the HH:MM clock value used only for ambience.
func (in Input) TimeOfDay() string {
	return in.At.Format("15:04")
}

const stylePrompt = `【风格】
– 所有元素（建筑物、树木、车辆、人物、地标、标志等）均以钩针玩偶的形式呈现。
– 人物也以可爱的钩针玩偶形式出现，表情萌趣，四肢短小，比例圆润。
– 柔和的粉彩色调 + 舒适的针织纹理。
– 背景是一个完全由针织元素构成的微缩城市世界。
`

const layoutPrompt = `[界面布局]
– 顶部中央显示城市名称
– 下方显示日期
– 下方显示今日实际温度范围（使用真实天气数据中的温度）
– 今日天气图标（云/晴/雪/雨等，由毛线制成）
– 底部无文字。

[自动文本颜色优化]
文本颜色会根据背景亮度、色调、天气状况和时间自动调整，以提高可读性。

[整体色调]
– 9:16 比例
– 温馨的冬日氛围，柔和的光线
– 一个可爱、简洁的微缩世界
`

// BuildPrompt renders the single long-form image instruction.
func BuildPrompt(in Input) string {
	var b strings.Builder

	fmt.Fprintf(&b, "【%s，%s】\n\n", in.City, in.DateLabel())
	fmt.Fprintf(&b, "【真实天气数据】\n%s\n\n", in.Weather)
	b.WriteString("请根据以上真实天气数据生成图片，不要编造天气数据中没有的天气现象。\n\n")

	b.WriteString(stylePrompt)
	b.WriteString("\n【天气表现】\n– 根据上面的真实天气数据准确反映天气状况：\n")
	for _, section := range WeatherMotifs() {
		fmt.Fprintf(&b, "\n%s：\n", section.Title)
		for _, m := range section.Motifs {
			fmt.Fprintf(&b, "• %s → %s\n", m.Condition, m.Visual)
		}
	}

	b.WriteString("\n[自动时区反映]\n")
	fmt.Fprintf(&b, "- 当前时间是%s 不用展示！只是作为背景氛围依据！\n", in.TimeOfDay())
	b.WriteString("– 背景氛围会根据当前时间而变化：\n")
	for _, band := range ambienceBands {
		fmt.Fprintf(&b, "• %s (%02d:00-%02d:00) → %s\n", band.Name, band.Start, band.End, band.Visual)
	}
	fmt.Fprintf(&b, "– 本次采用「%s」氛围。\n", BandFor(in.At).Name)

	b.WriteString("\n[背景构成]\n")
	fmt.Fprintf(&b, "– 以针织玩偶的形式重新诠释具有代表性的城市地标：%s，要完整显示！\n", in.Landmark)
	b.WriteString("– 并在左下角显示地标名称\n")
	b.WriteString("– 自动生成中文标识，使其以钩针编织的风格自然呈现。\n\n")

	b.WriteString(layoutPrompt)
	return b.String()
}
