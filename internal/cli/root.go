package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Execute ildiz komandani ishga tushiradi va chiqish kodini qaytaradi
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "xato:", err)
		return 1
	}
	return 0
}

// NewRootCmd komanda daraxtini yig'adi
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "assistant",
		Short: "Kompyuter texnikasi do'koni uchun maslahatchi bot",
		Long: `Telegram orqali PK sborkalari yig'ib beradigan va katalogdan
tovar qidiradigan maslahatchi. serve botni ishga tushiradi, import
katalog faylini yuklaydi, build esa sborkani terminalda sinab ko'rish
uchun.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCmd())
	root.AddCommand(newImportCmd())
	root.AddCommand(newBuildCmd())
	root.AddCommand(newVersionCmd())
	return root
}
