package timezone

import "time"

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("Asia/Shanghai")
	if err != nil {
		panic(err)
	}
}

// force timezone to the marketplace's local time because crawl timestamps
// come back without an offset and servers may end up in arbitrary regions
func Now() time.Time {
	return time.Now().In(Location)
}

const crawlTimeLayout = "2006-01-02 15:04:05"

// parses a "Crawl time" string the way the scraper writes it,
// e.g. "2024-05-01 12:30:45"
func ParseCrawlTime(s string) (time.Time, error) {
	return time.ParseInLocation(crawlTimeLayout, s, Location)
}

func FormatCrawlTime(t time.Time) string {
	return t.In(Location).Format(crawlTimeLayout)
}
