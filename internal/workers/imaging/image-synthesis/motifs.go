package imagesynthesis

// Motif maps a weather keyword to how it is drawn.
type Motif struct {
	Condition string
	Visual    string
}

var precipitationMotifs = []Motif{
	{"无降水", "地面干爽，画面中没有雨雪元素"},
	{"小雨/毛毛雨", "稀疏的毛线细雨丝，淡淡的湿润色调"},
	{"中雨", "密集的毛线雨滴，地面有小水洼"},
	{"大雨/暴雨", "粗重的毛线雨帘，飞溅的针织水花，深灰色背景"},
	{"小雪", "零星的钩针小雪花轻轻飘落"},
	{"中雪", "密集的钩针雪花，地面薄雪层"},
	{"大雪/暴雪", "漫天飞舞的大片钩针雪花，厚厚的针织积雪"},
	{"小雨夹雪", "零星的毛线雨丝夹杂几片钩针雪花"},
	{"雨夹雪", "毛线雨滴与钩针雪花交织"},
	{"大雨夹雪", "密集的毛线雨帘与大片钩针雪花交织，地面湿滑的针织积雪"},
}

var skyMotifs = []Motif{
	{"晴朗", "柔和的粉彩蓝天，毛绒太阳"},
	{"多云", "蓬松的针织白云点缀天空"},
	{"阴天", "厚重的灰色针织云层覆盖"},
	{"雾/霾", "朦胧的毛毡雾气弥漫"},
}

var windMotifs = []Motif{
	{"微风(1-2级)", "树叶和旗帜轻轻摆动"},
	{"和风(3-4级)", "树枝明显摇晃，毛线飘带飞扬"},
	{"大风(5-6级)", "树木大幅摆动，云朵快速移动，人物围巾飘起"},
	{"强风(7级以上)", "树木剧烈弯曲，落叶纷飞，画面动感强烈"},
}

// MotifSection is a titled group of motifs in the prompt.
type MotifSection struct {
	Title  string
	Motifs []Motif
}

// WeatherMotifs returns the full condition-to-visual lookup, in prompt order.
func WeatherMotifs() []MotifSection {
	return []MotifSection{
		{Title: "降水表现", Motifs: precipitationMotifs},
		{Title: "天空表现", Motifs: skyMotifs},
		{Title: "风力表现", Motifs: windMotifs},
	}
}
