package domain

// APIVersion names a mounted version of the HTTP surface.
type APIVersion string

const APIVersionV1 APIVersion = "v1"

func (v APIVersion) String() string {
	return string(v)
}

// Prefix returns the router mount point for the version, e.g. "/v1".
func (v APIVersion) Prefix() string {
	return "/" + string(v)
}

// DefaultVersion is the version mounted by the server.
func DefaultVersion() APIVersion {
	return APIVersionV1
}
