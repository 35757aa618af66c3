package art

import (
	"fmt"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/gnomegl/gitoverlap/internal/utils"
)

func PrintLogo() {
	logo := figure.NewFigure("gitoverlap", "chunky", false)
	fmt.Fprintf(os.Stderr, "\033[36m%s\033[0m", logo.String())
	fmt.Fprintf(os.Stderr, "                \033[91mv%s by gnomegl\033[0m\n\n", utils.GetVersion())
}
