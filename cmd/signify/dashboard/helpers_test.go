package dashboard

import (
	"signify/cmd/signify/ui"
)

func testStyles() ui.Styles {
	return ui.NewStyles(ui.LightTheme())
}
