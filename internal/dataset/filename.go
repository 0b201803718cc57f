package dataset

import (
	"fmt"
	"path/filepath"
	"strings"
)

// cameraLen is the fixed width of the camera code inside the second
// filename token; the remainder of that token is the sequence id.
const cameraLen = 2

// acceptedExtensions are the image extensions admitted to the pipeline,
// compared case-insensitively and without the leading dot.
var acceptedExtensions = []string{"jpg", "jpeg", "png"}

// AcceptedExtension reports whether name carries an admitted image
// extension. Files failing this check are excluded before parsing.
func AcceptedExtension(name string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	for _, accepted := range acceptedExtensions {
		if ext == accepted {
			return true
		}
	}
	return false
}

// FilenameMeta holds the metadata fields encoded in an image filename of
// the form <identity>_<camera+sequence>_<frame>_<detectionBox>.<ext>,
// e.g. 0002_c1s1_000451_03.jpg.
type FilenameMeta struct {
	IdentityID     string
	CameraID       string
	SequenceID     string
	FrameNo        string
	DetectionBoxNo string
}

// ParseFilename decodes the underscore-delimited metadata grammar.
// It fails with ErrMalformedFilename when fewer than four tokens exist or
// the camera token is shorter than the fixed camera code width.
func ParseFilename(name string) (FilenameMeta, error) {
	tokens := strings.Split(name, "_")
	if len(tokens) < 4 {
		return FilenameMeta{}, fmt.Errorf("%w: %q: want 4 underscore-delimited tokens, got %d", ErrMalformedFilename, name, len(tokens))
	}
	camera := tokens[1]
	if len(camera) < cameraLen {
		return FilenameMeta{}, fmt.Errorf("%w: %q: camera token %q shorter than %d characters", ErrMalformedFilename, name, camera, cameraLen)
	}
	box := tokens[3]
	if ext := filepath.Ext(box); ext != "" {
		box = strings.TrimSuffix(box, ext)
	}
	return FilenameMeta{
		IdentityID:     tokens[0],
		CameraID:       camera[:cameraLen],
		SequenceID:     camera[cameraLen:],
		FrameNo:        tokens[2],
		DetectionBoxNo: box,
	}, nil
}
