package quran

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const verseKeyPrefix = "verse_"

// number accepts both 7 and "007" in the bundled JSON.
type number int

func (n *number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("invalid number %q: %w", s, err)
		}
		*n = number(v)
		return nil
	}
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*n = number(v)
	return nil
}

type rawSurah struct {
	Index   number `json:"index"`
	Title   string `json:"title"`
	TitleAr string `json:"titleAr"`
	Place   string `json:"place"`
	Type    string `json:"type"`
	Count   number `json:"count"`
	Juz     []struct {
		Index number `json:"index"`
		Verse struct {
			Start string `json:"start"`
			End   string `json:"end"`
		} `json:"verse"`
	} `json:"juz"`
}

type rawJuz struct {
	Index number `json:"index"`
	Start struct {
		Index number `json:"index"`
		Verse string `json:"verse"`
	} `json:"start"`
	End struct {
		Index number `json:"index"`
		Verse string `json:"verse"`
	} `json:"end"`
}

type rawSurahText struct {
	Index number            `json:"index"`
	Verse map[string]string `json:"verse"`
}

// ParseVerseKey turns "verse_12" (or a bare "12") into 12.
func ParseVerseKey(key string) (int, error) {
	n, err := verseNumber(key)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("verse key %q is not positive", key)
	}
	return n, nil
}

func verseNumber(key string) (int, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(key), verseKeyPrefix))
	if err != nil {
		return 0, fmt.Errorf("invalid verse key %q", key)
	}
	return n, nil
}

// ParseSurahs parses and validates the surah index.
func ParseSurahs(data []byte) ([]Surah, error) {
	var raw []rawSurah
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode surah index: %w", err)
	}

	surahs := make([]Surah, 0, len(raw))
	seen := make(map[int]bool, len(raw))
	for _, rs := range raw {
		s := Surah{
			Number:    int(rs.Index),
			Title:     rs.Title,
			TitleAr:   rs.TitleAr,
			Place:     rs.Place,
			Type:      rs.Type,
			AyahCount: int(rs.Count),
		}
		if s.Number <= 0 {
			return nil, fmt.Errorf("surah index %d is not positive", s.Number)
		}
		if seen[s.Number] {
			return nil, fmt.Errorf("duplicate surah %d", s.Number)
		}
		seen[s.Number] = true
		if s.AyahCount < 0 {
			return nil, fmt.Errorf("surah %d: negative ayah count", s.Number)
		}

		for _, rj := range rs.Juz {
			start, err := ParseVerseKey(rj.Verse.Start)
			if err != nil {
				return nil, fmt.Errorf("surah %d: %w", s.Number, err)
			}
			end, err := ParseVerseKey(rj.Verse.End)
			if err != nil {
				return nil, fmt.Errorf("surah %d: %w", s.Number, err)
			}
			r := JuzRange{Juz: int(rj.Index), StartAyah: start, EndAyah: end}
			if r.Juz <= 0 {
				return nil, fmt.Errorf("surah %d: juz index %d is not positive", s.Number, r.Juz)
			}
			if r.EndAyah < r.StartAyah || r.EndAyah > s.AyahCount {
				return nil, fmt.Errorf("surah %d: juz %d range %d-%d out of bounds", s.Number, r.Juz, start, end)
			}
			s.JuzRanges = append(s.JuzRanges, r)
		}
		sort.Slice(s.JuzRanges, func(i, j int) bool {
			return s.JuzRanges[i].StartAyah < s.JuzRanges[j].StartAyah
		})
		for i := 1; i < len(s.JuzRanges); i++ {
			if s.JuzRanges[i].StartAyah <= s.JuzRanges[i-1].EndAyah {
				return nil, fmt.Errorf("surah %d: overlapping juz ranges", s.Number)
			}
		}
		surahs = append(surahs, s)
	}

	sort.Slice(surahs, func(i, j int) bool { return surahs[i].Number < surahs[j].Number })
	return surahs, nil
}

// ParseJuz parses and validates the juz index.
func ParseJuz(data []byte) ([]Juz, error) {
	var raw []rawJuz
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode juz index: %w", err)
	}

	list := make([]Juz, 0, len(raw))
	seen := make(map[int]bool, len(raw))
	for _, rj := range raw {
		startAyah, err := ParseVerseKey(rj.Start.Verse)
		if err != nil {
			return nil, fmt.Errorf("juz %d start: %w", int(rj.Index), err)
		}
		endAyah, err := ParseVerseKey(rj.End.Verse)
		if err != nil {
			return nil, fmt.Errorf("juz %d end: %w", int(rj.Index), err)
		}
		j := Juz{
			Number:     int(rj.Index),
			StartSurah: int(rj.Start.Index),
			StartAyah:  startAyah,
			EndSurah:   int(rj.End.Index),
			EndAyah:    endAyah,
		}
		if j.Number <= 0 {
			return nil, fmt.Errorf("juz index %d is not positive", j.Number)
		}
		if seen[j.Number] {
			return nil, fmt.Errorf("duplicate juz %d", j.Number)
		}
		seen[j.Number] = true
		list = append(list, j)
	}

	sort.Slice(list, func(i, j int) bool { return list[i].Number < list[j].Number })
	return list, nil
}

// ParseSurahText parses one surah text file into ayahs ordered by number.
func ParseSurahText(surahNumber int, data []byte) ([]Ayah, error) {
	var raw rawSurahText
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode surah %d text: %w", surahNumber, err)
	}

	ayahs := make([]Ayah, 0, len(raw.Verse))
	for key, text := range raw.Verse {
		n, err := verseNumber(key)
		if err != nil {
			return nil, fmt.Errorf("surah %d: %w", surahNumber, err)
		}
		// verse_0 carries the bismillah header, not an ayah
		if n <= 0 {
			continue
		}
		ayahs = append(ayahs, Ayah{SurahNumber: surahNumber, AyahNumber: n, Text: text})
	}
	sort.Slice(ayahs, func(i, j int) bool { return ayahs[i].AyahNumber < ayahs[j].AyahNumber })
	return ayahs, nil
}
