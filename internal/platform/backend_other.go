//go:build !linux

package platform

// NewDefault has no native backend outside Linux; use NewStatic instead.
func NewDefault() (Backend, error) {
	return nil, ErrUnsupported
}
