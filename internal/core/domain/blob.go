package domain

import "strings"

// BlobPublicID dérive la clef de suppression d'une référence blob : dernier
// segment de chemin, extension retirée. C'est un contrat que le format d'URL
// du blob store doit respecter.
func BlobPublicID(url string) string {
	segment := url
	if i := strings.LastIndex(url, "/"); i >= 0 {
		segment = url[i+1:]
	}
	if j := strings.Index(segment, "."); j >= 0 {
		segment = segment[:j]
	}
	return segment
}
