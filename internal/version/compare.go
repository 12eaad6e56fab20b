package version

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/rxtech-lab/argo-chart/pkg/errors"
)

// CheckVersionCompatibility checks if a tooltip theme written for themeVersion
// can be used by the library at libraryVersion.
//
// Rules:
//   - "main" on either side is a development build and always passes
//   - major and minor versions must match
//   - patch versions may differ (a 1.2.0 theme works on 1.2.5)
func CheckVersionCompatibility(libraryVersion, themeVersion string) error {
	libraryVersion = strings.TrimPrefix(libraryVersion, "v")
	themeVersion = strings.TrimPrefix(themeVersion, "v")

	if libraryVersion == "main" || themeVersion == "main" {
		return nil
	}

	library, err := semver.NewVersion(libraryVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidVersion, err, "invalid library version '%s'", libraryVersion)
	}

	theme, err := semver.NewVersion(themeVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidVersion, err, "invalid theme version '%s'", themeVersion)
	}

	if library.Major() != theme.Major() || library.Minor() != theme.Minor() {
		return errors.Newf(errors.ErrCodeVersionMismatch, "library is %d.%d.x but theme requires %d.%d.x",
			library.Major(), library.Minor(), theme.Major(), theme.Minor())
	}

	return nil
}
