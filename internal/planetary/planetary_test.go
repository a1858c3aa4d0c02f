package planetary

import (
	"errors"
	"testing"
	"time"

	"github.com/zaibaitech/asrar-sub001/internal/domain"
)

func TestChaldeanOrder(t *testing.T) {
	want := []domain.Planet{
		domain.Saturn, domain.Jupiter, domain.Mars, domain.Sun,
		domain.Venus, domain.Mercury, domain.Moon,
	}
	got := ChaldeanOrder()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ChaldeanOrder()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
	got[0] = domain.Moon
	if ChaldeanOrder()[0] != domain.Saturn {
		t.Error("ChaldeanOrder() returned shared storage")
	}
}

func TestDayRuler(t *testing.T) {
	want := []domain.Planet{
		domain.Sun, domain.Moon, domain.Mars, domain.Mercury,
		domain.Jupiter, domain.Venus, domain.Saturn,
	}
	for wd, w := range want {
		got, err := DayRuler(wd)
		if err != nil {
			t.Fatalf("DayRuler(%d) error: %v", wd, err)
		}
		if got != w {
			t.Errorf("DayRuler(%d) = %s, want %s", wd, got, w)
		}
		if InfoOf(got).Day != time.Weekday(wd) {
			t.Errorf("InfoOf(%s).Day = %s, want %s", got, InfoOf(got).Day, time.Weekday(wd))
		}
	}
}

func TestRulingPlanet_HourZeroIsDayRuler(t *testing.T) {
	for wd := 0; wd < 7; wd++ {
		ruler, _ := DayRuler(wd)
		got, err := RulingPlanet(wd, 0)
		if err != nil {
			t.Fatalf("RulingPlanet(%d, 0) error: %v", wd, err)
		}
		if got != ruler {
			t.Errorf("RulingPlanet(%d, 0) = %s, want %s", wd, got, ruler)
		}
	}
}

func TestRulingPlanet_PeriodSeven(t *testing.T) {
	for wd := 0; wd < 7; wd++ {
		for h := 0; h+7 < 24; h++ {
			a, _ := RulingPlanet(wd, h)
			b, _ := RulingPlanet(wd, h+7)
			if a != b {
				t.Errorf("RulingPlanet(%d, %d) = %s but RulingPlanet(%d, %d) = %s", wd, h, a, wd, h+7, b)
			}
		}
	}
}

// The hour after the last hour of one day is the first hour of the next:
// the day-ruler table and the Chaldean order must agree.
func TestRulingPlanet_ContinuesIntoNextDay(t *testing.T) {
	for wd := 0; wd < 7; wd++ {
		last, _ := RulerIndex(wd, 23)
		next, _ := RulerIndex((wd+1)%7, 0)
		if (last+1)%7 != next {
			t.Errorf("weekday %d hour 23 index %d does not precede weekday %d hour 0 index %d", wd, last, (wd+1)%7, next)
		}
	}
}

func TestRulingPlanet_Examples(t *testing.T) {
	tests := []struct {
		weekday, hour int
		want          domain.Planet
	}{
		{0, 0, domain.Sun},
		{0, 1, domain.Venus},
		{0, 3, domain.Moon},
		{0, 4, domain.Saturn},
		{1, 0, domain.Moon},
		{6, 23, domain.Mars},
		{3, 14, domain.Mercury},
	}
	for _, tt := range tests {
		got, err := RulingPlanet(tt.weekday, tt.hour)
		if err != nil {
			t.Fatalf("RulingPlanet(%d, %d) error: %v", tt.weekday, tt.hour, err)
		}
		if got != tt.want {
			t.Errorf("RulingPlanet(%d, %d) = %s, want %s", tt.weekday, tt.hour, got, tt.want)
		}
	}
}

func TestRulingPlanet_OutOfRange(t *testing.T) {
	tests := []struct {
		weekday, hour int
		field         string
	}{
		{-1, 0, "weekday"},
		{7, 0, "weekday"},
		{0, -1, "hour index"},
		{0, 24, "hour index"},
	}
	for _, tt := range tests {
		_, err := RulingPlanet(tt.weekday, tt.hour)
		var re *domain.InvalidRangeError
		if !errors.As(err, &re) {
			t.Fatalf("RulingPlanet(%d, %d) error = %v, want InvalidRangeError", tt.weekday, tt.hour, err)
		}
		if re.Field != tt.field {
			t.Errorf("RulingPlanet(%d, %d) field = %q, want %q", tt.weekday, tt.hour, re.Field, tt.field)
		}
	}
}

func TestElements(t *testing.T) {
	tests := map[domain.Planet]domain.Element{
		domain.Sun: domain.Fire, domain.Mars: domain.Fire,
		domain.Moon: domain.Water, domain.Venus: domain.Water,
		domain.Mercury: domain.Air, domain.Jupiter: domain.Air,
		domain.Saturn: domain.Earth,
	}
	for p, want := range tests {
		if got := ElementOf(p); got != want {
			t.Errorf("ElementOf(%s) = %s, want %s", p, got, want)
		}
	}

	if e, _ := DayElement(0); e != domain.Fire {
		t.Errorf("DayElement(0) = %s, want fire", e)
	}
	if e, _ := HourElement(0, 3); e != domain.Water {
		t.Errorf("HourElement(0, 3) = %s, want water", e)
	}
	if _, err := HourElement(0, 30); !errors.Is(err, domain.ErrInvalidRange) {
		t.Errorf("HourElement(0, 30) error = %v, want ErrInvalidRange", err)
	}
}

// ─── Clock ──────────────────────────────────────────────────────────────────

// 2024-03-10 is a Sunday.
func testDay() SolarDay {
	return SolarDay{
		Sunrise:     time.Date(2024, 3, 10, 5, 0, 0, 0, time.UTC),
		Sunset:      time.Date(2024, 3, 10, 19, 0, 0, 0, time.UTC), // 14h → 70 min hours
		NextSunrise: time.Date(2024, 3, 11, 5, 0, 0, 0, time.UTC),  // 10h → 50 min hours
	}
}

func TestTemporalHourAt(t *testing.T) {
	day := testDay()
	tests := []struct {
		at    time.Time
		hour  int
		start time.Time
	}{
		{time.Date(2024, 3, 10, 5, 0, 0, 0, time.UTC), 0, time.Date(2024, 3, 10, 5, 0, 0, 0, time.UTC)},
		{time.Date(2024, 3, 10, 6, 10, 0, 0, time.UTC), 1, time.Date(2024, 3, 10, 6, 10, 0, 0, time.UTC)},
		{time.Date(2024, 3, 10, 18, 59, 0, 0, time.UTC), 11, time.Date(2024, 3, 10, 17, 50, 0, 0, time.UTC)},
		{time.Date(2024, 3, 10, 19, 0, 0, 0, time.UTC), 12, time.Date(2024, 3, 10, 19, 0, 0, 0, time.UTC)},
		{time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), 18, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)},
		{time.Date(2024, 3, 11, 4, 59, 0, 0, time.UTC), 23, time.Date(2024, 3, 11, 4, 10, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		wd, h, start, _, err := TemporalHourAt(tt.at, day)
		if err != nil {
			t.Fatalf("TemporalHourAt(%s) error: %v", tt.at, err)
		}
		if wd != 0 {
			t.Errorf("TemporalHourAt(%s) weekday = %d, want 0 (Sunday, from sunrise)", tt.at, wd)
		}
		if h != tt.hour {
			t.Errorf("TemporalHourAt(%s) hour = %d, want %d", tt.at, h, tt.hour)
		}
		if !start.Equal(tt.start) {
			t.Errorf("TemporalHourAt(%s) start = %s, want %s", tt.at, start, tt.start)
		}
	}
}

func TestTemporalHourAt_OutsideDay(t *testing.T) {
	day := testDay()
	for _, at := range []time.Time{day.Sunrise.Add(-time.Minute), day.NextSunrise} {
		_, _, _, _, err := TemporalHourAt(at, day)
		if !errors.Is(err, domain.ErrInvalidRange) {
			t.Errorf("TemporalHourAt(%s) error = %v, want ErrInvalidRange", at, err)
		}
	}
}

func TestSolarDay_Validate(t *testing.T) {
	day := testDay()
	day.Sunset = day.Sunrise.Add(-time.Hour)
	if err := day.Validate(); !errors.Is(err, domain.ErrInvalidRange) {
		t.Errorf("Validate() = %v, want ErrInvalidRange", err)
	}
	day = testDay()
	day.NextSunrise = day.Sunset
	if err := day.Validate(); !errors.Is(err, domain.ErrInvalidRange) {
		t.Errorf("Validate() = %v, want ErrInvalidRange", err)
	}
}

func TestSolarDay_TooShortToDivide(t *testing.T) {
	short := testDay()
	short.Sunset = short.Sunrise.Add(5 * time.Nanosecond)
	shortNight := testDay()
	shortNight.NextSunrise = shortNight.Sunset.Add(11 * time.Nanosecond)

	for name, day := range map[string]SolarDay{"day": short, "night": shortNight} {
		if err := day.Validate(); !errors.Is(err, domain.ErrInvalidRange) {
			t.Errorf("%s: Validate() = %v, want ErrInvalidRange", name, err)
		}
		if _, _, _, _, err := TemporalHourAt(day.Sunset, day); !errors.Is(err, domain.ErrInvalidRange) {
			t.Errorf("%s: TemporalHourAt() error = %v, want ErrInvalidRange", name, err)
		}
	}

	// Exactly 12ns of daylight still divides into 1ns hours.
	edge := testDay()
	edge.Sunset = edge.Sunrise.Add(12 * time.Nanosecond)
	if err := edge.Validate(); err != nil {
		t.Errorf("Validate(12ns day) = %v, want nil", err)
	}
}

func TestFixedHourFromSunrise(t *testing.T) {
	sunrise := time.Date(2024, 3, 10, 6, 30, 0, 0, time.UTC)
	wd, h, err := FixedHourFromSunrise(sunrise.Add(20*time.Hour+5*time.Minute), sunrise)
	if err != nil {
		t.Fatalf("FixedHourFromSunrise error: %v", err)
	}
	if wd != 0 || h != 20 {
		t.Errorf("FixedHourFromSunrise = (%d, %d), want (0, 20)", wd, h)
	}
	if _, _, err := FixedHourFromSunrise(sunrise.Add(24*time.Hour), sunrise); !errors.Is(err, domain.ErrInvalidRange) {
		t.Errorf("FixedHourFromSunrise(+24h) error = %v, want ErrInvalidRange", err)
	}
}

// ─── Engine ─────────────────────────────────────────────────────────────────

func TestNewEngine_RejectsUnknownMode(t *testing.T) {
	if _, err := NewEngine("lunar", OriginMidnight); !errors.Is(err, domain.ErrConfiguration) {
		t.Errorf("NewEngine(lunar) error = %v, want ErrConfiguration", err)
	}
	if _, err := NewEngine(ModeFixed, "noon"); !errors.Is(err, domain.ErrConfiguration) {
		t.Errorf("NewEngine(origin noon) error = %v, want ErrConfiguration", err)
	}
}

func TestEngine_AtFixedMidnight(t *testing.T) {
	e, err := NewEngine(ModeFixed, OriginMidnight)
	if err != nil {
		t.Fatal(err)
	}
	// Monday 03:15 → hour 3 of Monday: Moon, Saturn, Jupiter, Mars.
	hr, err := e.At(time.Date(2024, 3, 11, 3, 15, 0, 0, time.UTC), nil)
	if err != nil {
		t.Fatalf("At() error: %v", err)
	}
	if hr.Weekday != 1 || hr.HourIndex != 3 || hr.Ruler != domain.Mars {
		t.Errorf("At() = %+v, want Monday hour 3 ruled by mars", hr)
	}
	if hr.DayRuler != domain.Moon {
		t.Errorf("At().DayRuler = %s, want moon", hr.DayRuler)
	}
	if hr.Night {
		t.Error("fixed midnight hours should not be marked as night")
	}
}

func TestEngine_AtTemporal(t *testing.T) {
	e, err := NewEngine(ModeTemporal, OriginMidnight)
	if err != nil {
		t.Fatal(err)
	}
	day := testDay()
	// Monday 01:00 UTC still belongs to Sunday's planetary day.
	hr, err := e.At(time.Date(2024, 3, 11, 1, 0, 0, 0, time.UTC), &day)
	if err != nil {
		t.Fatalf("At() error: %v", err)
	}
	if hr.Weekday != 0 || hr.HourIndex != 19 || !hr.Night {
		t.Errorf("At() = %+v, want Sunday night hour 19", hr)
	}
	if hr.Start == nil || hr.End == nil || hr.Duration() != 50*time.Minute {
		t.Errorf("At() window = %v – %v, want a 50 minute hour", hr.Start, hr.End)
	}

	if _, err := e.At(day.Sunrise, nil); !errors.Is(err, domain.ErrInvalidRange) {
		t.Errorf("At(nil day) error = %v, want ErrInvalidRange", err)
	}
}

func TestEngine_DayHours(t *testing.T) {
	e, _ := NewEngine(ModeFixed, OriginSunrise)
	hours, err := e.DayHours(5)
	if err != nil {
		t.Fatalf("DayHours(5) error: %v", err)
	}
	if len(hours) != 24 {
		t.Fatalf("len(DayHours(5)) = %d, want 24", len(hours))
	}
	if hours[0].Ruler != domain.Venus {
		t.Errorf("DayHours(5)[0].Ruler = %s, want venus", hours[0].Ruler)
	}
	for i, hr := range hours {
		if hr.Night != (i >= 12) {
			t.Errorf("DayHours(5)[%d].Night = %v", i, hr.Night)
		}
	}
	if _, err := e.DayHours(9); !errors.Is(err, domain.ErrInvalidRange) {
		t.Errorf("DayHours(9) error = %v, want ErrInvalidRange", err)
	}
}
