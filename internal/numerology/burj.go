package numerology

import "github.com/zaibaitech/asrar-sub001/internal/domain"

// burjTable lists the twelve stations from the Ram onwards. Elements follow
// the triplicities: fire, earth, air, water, repeating.
var burjTable = [12]domain.Burj{
	{Index: 1, Name: "Aries", Arabic: "الحمل", Element: domain.Fire},
	{Index: 2, Name: "Taurus", Arabic: "الثور", Element: domain.Earth},
	{Index: 3, Name: "Gemini", Arabic: "الجوزاء", Element: domain.Air},
	{Index: 4, Name: "Cancer", Arabic: "السرطان", Element: domain.Water},
	{Index: 5, Name: "Leo", Arabic: "الأسد", Element: domain.Fire},
	{Index: 6, Name: "Virgo", Arabic: "السنبلة", Element: domain.Earth},
	{Index: 7, Name: "Libra", Arabic: "الميزان", Element: domain.Air},
	{Index: 8, Name: "Scorpio", Arabic: "العقرب", Element: domain.Water},
	{Index: 9, Name: "Sagittarius", Arabic: "القوس", Element: domain.Fire},
	{Index: 10, Name: "Capricorn", Arabic: "الجدي", Element: domain.Earth},
	{Index: 11, Name: "Aquarius", Arabic: "الدلو", Element: domain.Air},
	{Index: 12, Name: "Pisces", Arabic: "الحوت", Element: domain.Water},
}

// BurjOf returns the station of total (total mod 12, remainder 0 is Pisces).
func BurjOf(total int) domain.Burj {
	r := total % 12
	if r < 0 {
		r += 12
	}
	if r == 0 {
		r = 12
	}
	return burjTable[r-1]
}
