package entity

import "FaceGeometry/pkg/geometry"

// MeshResult is the face-mesh service reply for one camera frame.
type MeshResult struct {
	Status string                `json:"status"`
	Width  int                   `json:"width"`
	Height int                   `json:"height"`
	Faces  [][]geometry.Landmark `json:"multi_face_landmarks"`
}

// FirstFace returns the landmarks of the first detected face, or nil.
func (m MeshResult) FirstFace() []geometry.Landmark {
	if len(m.Faces) == 0 {
		return nil
	}
	return m.Faces[0]
}
