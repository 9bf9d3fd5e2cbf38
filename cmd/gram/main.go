/*
Command gram is an interactive sandbox ("gram-repl") for experimenting with
runtime-synthesized grammars. Every line entered is parsed against a small
built-in arithmetic grammar and the resulting value is printed; it exists
to exercise the library end to end in the same spirit as the teacher's
T.REPL, not as a general-purpose grammar-authoring tool.

Please refer to package gram.
*/
package main

import (
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/chzyer/readline"
	"github.com/npillmayer/gram"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pterm/pterm"
	"github.com/spf13/pflag"
)

func tracer() tracing.Trace { return tracing.Select("gram.cmd") }

// config is the optional TOML-loaded REPL configuration.
type config struct {
	Repl struct {
		Prompt string `toml:"prompt"`
	} `toml:"repl"`
}

func defaultConfig() config {
	var c config
	c.Repl.Prompt = "gram> "
	return c
}

func loadConfig(path string) (config, error) {
	c := defaultConfig()
	if path == "" {
		return c, nil
	}
	_, err := toml.DecodeFile(path, &c)
	return c, err
}

func main() {
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()

	traceLevel := pflag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	configPath := pflag.String("config", "", "Path to a TOML REPL config file")
	pflag.Parse()

	gtrace.SyntaxTracer.SetTraceLevel(tracing.TraceLevelFromString(*traceLevel))
	pterm.Info.Println("Welcome to the gram REPL")

	cfg, err := loadConfig(*configPath)
	if err != nil {
		pterm.Error.Printfln("loading config %q: %v", *configPath, err)
		os.Exit(2)
	}

	g := demoArithmeticGrammar()

	initial := strings.TrimSpace(strings.Join(pflag.Args(), " "))
	if initial != "" {
		evalAndPrint(g, initial)
	}

	repl, err := readline.New(cfg.Repl.Prompt)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(3)
	}
	defer repl.Close()

	tracer().Infof("quit with <ctrl>D")
	for {
		line, err := repl.Readline()
		if err != nil { // io.EOF on ctrl-D
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		evalAndPrint(g, line)
	}
	pterm.Info.Println("Good bye!")
}

func evalAndPrint(g *gram.Grammar, line string) {
	result, err := g.Parse(line)
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	pterm.Info.Printfln("%v", result)
}

func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// demoArithmeticGrammar builds the default sandbox grammar: integers with
// "+"/"*" (left-associative, "*" binding tighter) and parentheses.
func demoArithmeticGrammar() *gram.Grammar {
	g := gram.New("arith")
	g.Term("int", `[0-9]+`).As(func(text string) (any, error) {
		return strconv.Atoi(text)
	})
	g.Term("ws", `[ \t]+`).Skip()
	g.Literal("+", "+").Prec(1).Assoc(gram.Left)
	g.Literal("*", "*").Prec(2).Assoc(gram.Left)
	g.Rule("expr").Add(gram.Symbol("int")).AsValue()
	g.Rule("expr").Add("(", gram.Symbol("expr"), ")").As(func(args []any) any {
		return args[1]
	})
	g.Rule("expr").Add(gram.Symbol("expr"), gram.Symbol("+"), gram.Symbol("expr")).As(func(args []any) any {
		return args[0].(int) + args[2].(int)
	})
	g.Rule("expr").Add(gram.Symbol("expr"), gram.Symbol("*"), gram.Symbol("expr")).As(func(args []any) any {
		return args[0].(int) * args[2].(int)
	})
	g.Start("expr")
	return g
}
