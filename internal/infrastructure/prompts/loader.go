package prompts

import (
	_ "embed"
)

//go:embed fix.txt
var FixPrompt string
