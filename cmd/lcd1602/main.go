package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/callebjorkell/lcd1602/internal/console"
	"github.com/callebjorkell/lcd1602/internal/lcd"
	log "github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	app        = kingpin.New("lcd1602", "HD44780 16x2 LCD debug console")
	debug      = app.Flag("debug", "Turn on debug logging.").Bool()
	configFile = app.Flag("config", "Pin and glyph configuration file.").Default("lcd1602.yaml").String()

	shell = app.Command("shell", "Run LCD commands read from stdin.")

	execCmd  = app.Command("exec", "Run a single LCD command.")
	skipInit = execCmd.Flag("skip-init", "Do not power up the display first.").Bool()
	execArgs = execCmd.Arg("command", "Command and its arguments, e.g. lcd-loc 5 1").Required().Strings()

	serve  = app.Command("serve", "Serve the LCD console over HTTP.")
	listen = serve.Flag("listen", "Address to listen on.").Default(":8090").String()

	version = app.Command("version", "Show current version.")
)

var buildTime, buildVersion string

func showVersion() {
	if buildTime != "" && buildVersion != "" {
		fmt.Printf("%s (built: %s)\n", buildVersion, buildTime)
	} else {
		fmt.Println("lcd1602: dev")
	}
}

type colorFormatter struct {
	log.TextFormatter
}

func (f *colorFormatter) Format(entry *log.Entry) ([]byte, error) {
	var levelColor int
	switch entry.Level {
	case log.DebugLevel, log.TraceLevel:
		levelColor = 90 // dark grey
	case log.WarnLevel:
		levelColor = 33 // yellow
	case log.ErrorLevel, log.FatalLevel, log.PanicLevel:
		levelColor = 91 // bright red
	default:
		levelColor = 39 // default
	}
	return []byte(fmt.Sprintf("\x1b[%dm%s\x1b[0m\n", levelColor, entry.Message)), nil
}

func main() {
	cmd, err := app.Parse(os.Args[1:])
	if err != nil {
		fmt.Printf("%v: Try --help\n", err.Error())
		os.Exit(1)
	}

	log.SetFormatter(&colorFormatter{})
	if *debug {
		log.Info("Enabling debug output...")
		log.SetLevel(log.DebugLevel)
	}

	switch cmd {
	case shell.FullCommand():
		runShell()
	case execCmd.FullCommand():
		runOnce()
	case serve.FullCommand():
		log.SetFormatter(&log.TextFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
		startServer()
	case version.FullCommand():
		showVersion()
	default:
		kingpin.FatalUsage("Unrecognized command")
	}
}

func openDriver() (*lcd.Driver, *Config) {
	conf, err := readConfig(*configFile)
	if err != nil {
		log.Fatal(err)
	}
	p, err := newPins(conf)
	if err != nil {
		log.Fatal(err)
	}
	return lcd.New(p), conf
}

// bringUp powers the display, loads the configured glyphs and puts the cursor
// back at the start of the first line.
func bringUp(d console.Display, conf *Config) error {
	if err := d.Init(); err != nil {
		return err
	}
	for _, g := range conf.Glyphs {
		if err := d.CreateGlyph(g.Slot, g.Pattern()); err != nil {
			return err
		}
	}
	return d.SetLocation(0, 0)
}

func runShell() {
	d, conf := openDriver()
	if err := bringUp(d, conf); err != nil {
		log.Fatal(err)
	}
	if err := readCommands(console.New(d), os.Stdin, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

// readCommands runs one command per input line until EOF or "exit".
func readCommands(c *console.Console, in io.Reader, out io.Writer) error {
	const prompt = "lcd> "

	scanner := bufio.NewScanner(in)
	fmt.Fprint(out, prompt)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "exit" || line == "quit" {
			return nil
		}
		res, err := c.Execute(line)
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
		} else if res != "" {
			fmt.Fprintln(out, res)
		}
		fmt.Fprint(out, prompt)
	}
	return scanner.Err()
}

func runOnce() {
	d, conf := openDriver()
	if !*skipInit {
		if err := bringUp(d, conf); err != nil {
			log.Fatal(err)
		}
	}
	res, err := console.New(d).Execute(strings.Join(*execArgs, " "))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(res)
}

func startServer() {
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)

	d, conf := openDriver()
	shared := lcd.NewShared(d)
	if err := bringUp(shared, conf); err != nil {
		log.Fatal(err)
	}

	s := console.NewServer(*listen, console.New(shared))
	go func() {
		if err := s.Listen(); err != nil {
			log.Fatal(err)
		}
	}()

	<-signalChan

	if err := s.Close(); err != nil {
		log.Warn("Unable to close console server: ", err)
	}
	if err := shared.Disable(); err != nil {
		log.Warn("Unable to disable LCD: ", err)
	}

	log.Info("Done...")
}
