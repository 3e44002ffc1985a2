package trending

import (
	"math"
	"sort"
	"strings"
	"time"
	"unicode"

	"newshub/internal/domain"
	"newshub/internal/pkg/i18n"
)

const (
	minKeywordLength = 4
	decayHalfLife    = 24 * time.Hour
)

// ScoreTopics ranks keywords across articles. Each article contributes its
// engagement weight, halved every 24h of age, once per distinct keyword.
func ScoreTopics(articles []domain.Article, now time.Time, limit int) []domain.TrendingTopic {
	stopwords := i18n.Stopwords(i18n.DefaultLocale)
	scores := make(map[string]float64)
	counts := make(map[string]int64)

	for _, a := range articles {
		weight := engagement(a) * decay(now.Sub(a.PublishedAt))
		for kw := range keywords(a, stopwords) {
			scores[kw] += weight
			counts[kw]++
		}
	}

	topics := make([]domain.TrendingTopic, 0, len(scores))
	for kw, score := range scores {
		topics = append(topics, domain.TrendingTopic{
			Topic:        kw,
			Score:        math.Round(score*100) / 100,
			ArticleCount: counts[kw],
			CalculatedAt: now,
		})
	}

	sort.Slice(topics, func(i, j int) bool {
		if topics[i].Score != topics[j].Score {
			return topics[i].Score > topics[j].Score
		}
		return topics[i].Topic < topics[j].Topic
	})

	if limit > 0 && len(topics) > limit {
		topics = topics[:limit]
	}
	return topics
}

func engagement(a domain.Article) float64 {
	return 1 + float64(a.LikesCount) + 2*float64(a.CommentsCount) + 3*float64(a.RepostsCount)
}

func decay(age time.Duration) float64 {
	if age < 0 {
		age = 0
	}
	return math.Pow(0.5, age.Hours()/decayHalfLife.Hours())
}

func keywords(a domain.Article, stopwords i18n.WordSet) map[string]struct{} {
	set := make(map[string]struct{})
	if c := strings.ToLower(strings.TrimSpace(a.Category)); c != "" {
		set[c] = struct{}{}
	}
	for _, tag := range a.Tags {
		if t := strings.ToLower(strings.TrimSpace(tag)); t != "" {
			set[t] = struct{}{}
		}
	}

	words := strings.FieldsFunc(strings.ToLower(a.Title), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, w := range words {
		if len([]rune(w)) < minKeywordLength {
			continue
		}
		if stopwords.Contains(w) {
			continue
		}
		set[w] = struct{}{}
	}
	return set
}
