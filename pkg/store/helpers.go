package store

import (
	"strconv"
	"strings"
)

const (
	artworkDetailsPrefix = "artworkDetails:"
	rankingPrefix        = "productiveArtistArtworks:"
	metaPrefix           = "meta:"
)

// ArtworkDetailsKey returns the cache key of an artwork detail hash.
func ArtworkDetailsKey(artworkID string) string {
	return artworkDetailsPrefix + artworkID
}

// RankingKey returns the cache key of an artist's ranking sorted set.
func RankingKey(artistID, artistName string) string {
	return rankingPrefix + artistID + ":" + artistName
}

// ParseRankingKey splits a ranking key into artist ID and name. Artist IDs
// never contain a colon, so the name may.
func ParseRankingKey(key string) (artistID, artistName string, ok bool) {
	rest, found := strings.CutPrefix(key, rankingPrefix)
	if !found {
		return "", "", false
	}
	artistID, artistName, ok = strings.Cut(rest, ":")
	if !ok || artistID == "" {
		return "", "", false
	}
	return artistID, artistName, true
}

// FormatPrice renders a price the way it is stored in the cache: the shortest
// decimal form that round-trips, without exponent.
func FormatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}
