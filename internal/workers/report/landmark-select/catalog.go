package landmarkselect

// defaultCatalog is the fixed set of Hangzhou landmarks drawn from each run.
var defaultCatalog = [...]string{
	"西湖断桥",
	"雷峰塔",
	"三潭印月",
	"灵隐寺",
	"西溪湿地",
	"钱塘江大桥",
	"六和塔",
	"苏堤春晓",
	"平湖秋月",
	"曲院风荷",
	"花港观鱼",
	"柳浪闻莺",
	"南屏晚钟",
	"双峰插云",
	"宝石山",
	"湖滨步行街",
	"河坊街",
	"南宋御街",
	"京杭大运河",
	"拱宸桥",
}

// Catalog is a read-only list of landmark names.
type Catalog []string

// DefaultCatalog returns a copy of the built-in catalog.
func DefaultCatalog() Catalog {
	c := make(Catalog, len(defaultCatalog))
	copy(c, defaultCatalog[:])
	return c
}

// Contains reports whether name is in the catalog.
func (c Catalog) Contains(name string) bool {
	for _, l := range c {
		if l == name {
			return true
		}
	}
	return false
}
