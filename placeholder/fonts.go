package placeholder

import (
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"runtime"

	"github.com/golang/freetype/truetype"
)

// ErrNoFont is returned by a FontSource that could not provide any font.
var ErrNoFont = errors.New("no usable font found")

// FontSource provides the TrueType font that labels are drawn with.
type FontSource interface {
	LoadFont() (*truetype.Font, string, error)
}

// FontFiles is a FontSource that tries each file in order and returns the first one that can
// be read and parsed.
type FontFiles []string

func (ff FontFiles) LoadFont() (*truetype.Font, string, error) {
	for _, path := range ff {
		data, err := ioutil.ReadFile(path)
		if err != nil {
			continue
		}
		f, err := truetype.Parse(data)
		if err != nil {
			continue
		}
		return f, path, nil
	}
	return nil, "", ErrNoFont
}

// DefaultFontFiles looks for Arial in the working directory and then in the usual font
// directories for the current platform.
func DefaultFontFiles() FontFiles {
	dirs := []string{""}
	switch runtime.GOOS {
	case "windows":
		dirs = append(dirs, filepath.Join(os.Getenv("WINDIR"), "Fonts"))
	case "darwin":
		dirs = append(dirs, "/Library/Fonts", "/System/Library/Fonts/Supplemental")
		if home, err := os.UserHomeDir(); err == nil {
			dirs = append(dirs, filepath.Join(home, "Library", "Fonts"))
		}
	default:
		dirs = append(dirs, "/usr/share/fonts/truetype/msttcorefonts", "/usr/share/fonts/TTF",
			"/usr/local/share/fonts")
		if home, err := os.UserHomeDir(); err == nil {
			dirs = append(dirs, filepath.Join(home, ".fonts"))
		}
	}

	var files FontFiles
	for _, name := range []string{"arial.ttf", "Arial.ttf"} {
		for _, dir := range dirs {
			files = append(files, filepath.Join(dir, name))
		}
	}
	return files
}
