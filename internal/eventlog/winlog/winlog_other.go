//go:build !windows

package winlog

func openSource(string) (handle, error) {
	return nil, ErrUnsupported
}

// Install на этой платформе всегда возвращает ErrUnsupported.
func Install(string) error {
	return ErrUnsupported
}

// Remove на этой платформе всегда возвращает ErrUnsupported.
func Remove(string) error {
	return ErrUnsupported
}
