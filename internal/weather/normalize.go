package weather

import (
	"math"
	"time"
)

const (
	maxHourly      = 24
	maxDailyOneCal = 8
	maxDailyLegacy = 7

	// secondsPerDegree approximates a timezone offset from longitude
	// (360 degrees over 86400 seconds) when the upstream field is zero.
	secondsPerDegree = 240
)

// toLocalTS shifts a UTC epoch by the timezone offset, producing the
// pseudo-local timestamp carried as dt_local.
func toLocalTS(utc, tzOffset int64) int64 {
	return utc + tzOffset
}

func firstDesc(ws []weatherDesc) (desc, icon string) {
	if len(ws) == 0 {
		return "", ""
	}
	return ws[0].Description, ws[0].Icon
}

func popOrZero(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// normalizeOneCall reshapes a One Call 3.0 payload. A missing `current`
// section yields a nil Current rather than an error; hourly and daily
// sequences are truncated to 24 and 8 entries.
func normalizeOneCall(p *oneCallPayload) *Record {
	tz := p.TimezoneOffset

	rec := &Record{
		Source:   SourceOneCall,
		TZOffset: tz,
	}

	if p.Current != nil {
		c := p.Current
		desc, icon := firstDesc(c.Weather)
		rec.Current = &Point{
			DtLocal:   toLocalTS(c.Dt, tz),
			Temp:      c.Temp,
			FeelsLike: c.FeelsLike,
			Humidity:  c.Humidity,
			WindSpeed: c.WindSpeed,
			WindDeg:   c.WindDeg,
			UVI:       c.UVI,
			Pressure:  c.Pressure,
			Clouds:    c.Clouds,
			Pop:       popOrZero(c.Pop),
			Desc:      desc,
			Icon:      icon,
		}
	}

	hourly := p.Hourly
	if len(hourly) > maxHourly {
		hourly = hourly[:maxHourly]
	}
	for _, h := range hourly {
		desc, icon := firstDesc(h.Weather)
		rec.Hourly = append(rec.Hourly, Point{
			DtLocal:   toLocalTS(h.Dt, tz),
			Temp:      h.Temp,
			Pop:       popOrZero(h.Pop),
			Humidity:  h.Humidity,
			WindSpeed: h.WindSpeed,
			Desc:      desc,
			Icon:      icon,
		})
	}

	daily := p.Daily
	if len(daily) > maxDailyOneCal {
		daily = daily[:maxDailyOneCal]
	}
	for _, d := range daily {
		desc, icon := firstDesc(d.Weather)
		rec.Daily = append(rec.Daily, DayPoint{
			DtLocal:   toLocalTS(d.Dt, tz),
			TMin:      d.Temp.Min,
			TMax:      d.Temp.Max,
			Pop:       popOrZero(d.Pop),
			Humidity:  d.Humidity,
			WindSpeed: d.WindSpeed,
			Desc:      desc,
			Icon:      icon,
		})
	}

	return rec
}

// normalizeLegacy reshapes the 2.5 current+forecast pair. The timezone
// offset comes from the current-conditions payload; when that field is
// exactly zero it is approximated from longitude. Hourly points are the
// first 24 entries of the 3-hour-step list (so up to 72 elapsed hours);
// daily points group the full list by the calendar date of the shifted
// timestamp, in first-encounter order, truncated to 7 groups.
func normalizeLegacy(cur *legacyCurrent, fc *legacyForecast) *Record {
	tz := cur.Timezone
	if tz == 0 {
		tz = int64(math.Round(cur.Coord.Lon * secondsPerDegree))
	}

	desc, icon := firstDesc(cur.Weather)
	current := &Point{
		DtLocal: toLocalTS(cur.Dt, tz),
		Desc:    desc,
		Icon:    icon,
		Pop:     0, // 2.5 current conditions carries no pop field
	}
	if cur.Main != nil {
		current.Temp = cur.Main.Temp
		current.FeelsLike = cur.Main.FeelsLike
		current.Humidity = cur.Main.Humidity
		current.Pressure = cur.Main.Pressure
	}
	if cur.Wind != nil {
		current.WindSpeed = cur.Wind.Speed
		current.WindDeg = cur.Wind.Deg
	}
	if cur.Clouds != nil {
		current.Clouds = cur.Clouds.All
	}

	rec := &Record{
		Source:   SourceLegacy,
		TZOffset: tz,
		Current:  current,
	}

	hourly := fc.List
	if len(hourly) > maxHourly {
		hourly = hourly[:maxHourly]
	}
	for _, it := range hourly {
		d, i := firstDesc(it.Weather)
		p := Point{
			DtLocal: toLocalTS(it.Dt, tz),
			Pop:     it.Pop,
			Desc:    d,
			Icon:    i,
		}
		if it.Main != nil {
			p.Temp = it.Main.Temp
			p.Humidity = it.Main.Humidity
		}
		if it.Wind != nil {
			p.WindSpeed = it.Wind.Speed
		}
		rec.Hourly = append(rec.Hourly, p)
	}

	rec.Daily = groupLegacyDaily(fc.List, tz)
	return rec
}

// groupLegacyDaily buckets forecast entries by the calendar date of their
// shifted timestamp. The shifted epoch is deliberately interpreted with a
// UTC calendar, matching how dt_local is consumed downstream.
func groupLegacyDaily(items []legacyForecastItem, tz int64) []DayPoint {
	byDate := make(map[string]*DayPoint)
	var order []string

	for _, it := range items {
		ts := toLocalTS(it.Dt, tz)
		day := time.Unix(ts, 0).UTC().Format("2006-01-02")

		var temp *float64
		if it.Main != nil {
			temp = it.Main.Temp
		}

		group, ok := byDate[day]
		if !ok {
			desc, icon := firstDesc(it.Weather)
			byDate[day] = &DayPoint{
				DtLocal: ts,
				TMin:    temp,
				TMax:    temp,
				Pop:     it.Pop,
				Desc:    desc,
				Icon:    icon,
			}
			order = append(order, day)
			continue
		}

		if temp != nil {
			if group.TMin == nil || *temp < *group.TMin {
				group.TMin = temp
			}
			if group.TMax == nil || *temp > *group.TMax {
				group.TMax = temp
			}
		}
		if it.Pop > group.Pop {
			group.Pop = it.Pop
		}
	}

	if len(order) > maxDailyLegacy {
		order = order[:maxDailyLegacy]
	}
	daily := make([]DayPoint, 0, len(order))
	for _, day := range order {
		daily = append(daily, *byDate[day])
	}
	return daily
}
