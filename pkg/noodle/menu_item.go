package noodle

// MenuItem is one row of a menu. IconSize is the edge length of Icon in
// texels; zero means the row has no icon.
type MenuItem struct {
	Name     string
	Setting  string
	Icon     TextureID
	IconSize int
}
