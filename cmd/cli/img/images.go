package img

import (
	"github.com/spf13/cobra"
	"github.com/swhawkins/LAPOK/internal/errors"
	"github.com/swhawkins/LAPOK/internal/imagegen"
	"github.com/swhawkins/LAPOK/internal/logging"
	"log/slog"
	"os"
)

var Group = &cobra.Group{
	ID:    "img",
	Title: "Image operations",
}

func init() {
	AppIcons.Flags().String("logo", "./ui/static/images/ok-logo.png", "path to the PNG logo")
	AppIcons.Flags().String("out", "./ui/static/icons", "output directory")
	Splash.Flags().String("logo", "./ui/static/images/ok-logo.png", "path to the PNG logo")
	Splash.Flags().String("out", "./ui/static/splash", "output directory")
	AppleIcons.Flags().String("src", "./ui/static/icons/icon-512.png", "path to the PNG icon to resize")
	AppleIcons.Flags().String("out", "./ui/static/icons", "output directory")
}

var AppIcons = &cobra.Command{
	Use:     "app-icons",
	GroupID: "img",
	Short:   "Generate app icons",
	Long:    `Generates the square home screen icons with the logo centred on blue`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return generate(cmd, "logo", imagegen.AppIcons())
	},
}

var Splash = &cobra.Command{
	Use:     "splash",
	GroupID: "img",
	Short:   "Generate splash screens",
	Long:    `Generates light and dark launch screens for the iOS device sizes`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return generate(cmd, "logo", imagegen.SplashScreens())
	},
}

var AppleIcons = &cobra.Command{
	Use:     "apple-icons",
	GroupID: "img",
	Short:   "Resize apple touch icons",
	Long:    `Resizes an existing icon to the apple touch icon sizes`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return generate(cmd, "src", imagegen.AppleIcons())
	},
}

// generate renders targets from the PNG named by the srcFlag flag into the --out directory.
func generate(cmd *cobra.Command, srcFlag string, targets []imagegen.Target) error {
	srcPath, err := cmd.Flags().GetString(srcFlag)
	if err != nil {
		return errors.Wrap(err, "invalid flag", slog.String("flag", srcFlag))
	}
	var outDir string
	if outDir, err = cmd.Flags().GetString("out"); err != nil {
		return errors.Wrap(err, "invalid out flag")
	}

	logger := logging.NewLogger(os.Stderr, slog.LevelInfo, false)
	src, err := imagegen.DecodePNG(srcPath)
	if err != nil {
		return errors.Wrap(err, "load source image")
	}
	if err = imagegen.Generate(cmd.Context(), logger, src, outDir, targets); err != nil {
		return errors.Wrap(err, "generate", slog.String("command", cmd.Name()))
	}
	cmd.Printf("Generated %d images in %s\n", len(targets), outDir)
	return nil
}
