package cleaner

import "strings"

// Known "no photo" placeholder images served by the source sites; a
// record pointing at one has no photo.
var placeholderPhotos = map[string]struct{}{
	"https://www.hospitalesangeles.com/directorios/images/medicos/nofoto.gif":      {},
	"https://hospiten.com/DesktopModules/Hospiten/Images/default-professional-image.png": {},
}

// CleanPhotoURL keeps the first whitespace-separated token of the raw
// photo text, trims stray dots, and maps placeholder images to nil.
func CleanPhotoURL(raw *string) *string {
	if raw == nil {
		return nil
	}

	fields := strings.Fields(*raw)
	if len(fields) == 0 {
		return nil
	}
	url := strings.Trim(fields[0], ".")
	if url == "" {
		return nil
	}
	if _, placeholder := placeholderPhotos[url]; placeholder {
		return nil
	}
	return &url
}
