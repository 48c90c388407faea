package weatherquery

import (
	"fmt"
	"strings"
)

// Source is a weather site the model is told to consult.
type Source struct {
	Name string
	URL  string
}

var DefaultSources = []Source{
	{Name: "中国天气网", URL: "https://www.weather.com.cn"},
	{Name: "墨迹天气", URL: "https://tianqi.moji.com"},
	{Name: "和风天气", URL: "https://www.qweather.com"},
}

// ReplyFormat is the five-line shape the model must answer in.
const ReplyFormat = `天气：[天气状况]
温度：[当前温度]℃
最高/最低：[最高]℃/[最低]℃
湿度：[湿度]%
风：[风向][风力]`

// BuildPrompt asks for real-time weather in city, anchored to dateLabel.
func BuildPrompt(city, dateLabel string, sources []Source) string {
	var b strings.Builder
	fmt.Fprintf(&b, "请使用网络搜索功能，访问以下天气网站查询 %s 现在的实时天气：\n", city)
	for i, s := range sources {
		fmt.Fprintf(&b, "%d. %s (%s)\n", i+1, s.Name, s.URL)
	}
	fmt.Fprintf(&b, "\n注意：现在是%s。\n\n", dateLabel)
	b.WriteString("请务必通过搜索获取真实数据，不要猜测或编造。综合多个来源，只回复以下格式：\n\n")
	b.WriteString(ReplyFormat)
	b.WriteString("\n")
	return b.String()
}
