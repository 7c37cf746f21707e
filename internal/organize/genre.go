package organize

import (
	"path/filepath"
	"strings"

	"github.com/tunegrab/tunegrab/internal/platform"
)

// The five library buckets every genre maps into
const (
	GenrePop        = "Pop"
	GenreRock       = "Rock"
	GenreElectronic = "Electronic"
	GenreClassical  = "Classical"
	GenreOther      = "Other"
)

// genreMap maps genre substrings to library buckets. Matching is
// case-insensitive substring, first hit wins, unknown falls to Other.
var genreMap = []struct {
	key    string
	bucket string
}{
	{"pop", GenrePop},
	{"rock", GenreRock},
	{"electronic", GenreElectronic},
	{"edm", GenreElectronic},
	{"classical", GenreClassical},
	{"hip hop", GenrePop},
	{"rap", GenrePop},
	{"jazz", GenreOther},
	{"folk", GenreOther},
	{"country", GenreOther},
	{"metal", GenreRock},
	{"indie", GenreRock},
	{"dance", GenreElectronic},
	{"blues", GenreOther},
	{"reggae", GenreOther},
	{"soul", GenreOther},
	{"r&b", GenrePop},
	{"soundtrack", GenreOther},
	{"other", GenreOther},
}

// MapGenre maps a raw genre tag to one of the five library buckets
func MapGenre(genre string) string {
	if genre == "" {
		return GenreOther
	}
	genreLower := strings.ToLower(genre)
	for _, m := range genreMap {
		if strings.Contains(genreLower, m.key) {
			return m.bucket
		}
	}
	return GenreOther
}

// MoveToGenreFolder moves an MP3 into <musicDir>/<bucket>/ based on its
// genre tag and returns the new path. Files already in place stay put.
func MoveToGenreFolder(path, genre, musicDir string) (string, error) {
	bucket := MapGenre(genre)
	dstDir := filepath.Join(musicDir, bucket)

	if filepath.Dir(path) == dstDir {
		return path, nil
	}
	return platform.MoveFile(path, dstDir)
}
