package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/viper"

	"github.com/gleaner-dev/gleaner/internal/ui"
)

func isJSON() bool {
	return viper.GetBool("json")
}

func isVerbose() bool {
	return viper.GetBool("verbose")
}

func printJSON(v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(output))
	return nil
}

var (
	headerStyle = ui.StyleHeader
	labelStyle  = ui.StyleSubtle
	okStyle     = ui.StyleSuccess
	warnStyle   = ui.StyleWarning
)
