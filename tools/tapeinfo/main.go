package main

import (
	"fmt"
	"os"
	"time"

	"github.com/wjkennedy/jira-quake3/internal/engine"
	"github.com/wjkennedy/jira-quake3/internal/infrastructure/storage"
)

func main() {
	if len(os.Args) < 2 {
		printHelp()
		return
	}

	switch os.Args[1] {
	case "show":
		if len(os.Args) < 3 {
			fmt.Println("Usage: tapeinfo show <tape.rctp>")
			return
		}
		if err := show(os.Args[2]); err != nil {
			fmt.Printf("Invalid tape: %v\n", err)
			os.Exit(1)
		}
	case "frames":
		if len(os.Args) < 3 {
			fmt.Println("Usage: tapeinfo frames <tape.rctp>")
			return
		}
		if err := frames(os.Args[2]); err != nil {
			fmt.Printf("Invalid tape: %v\n", err)
			os.Exit(1)
		}
	default:
		printHelp()
	}
}

func show(path string) error {
	tape, err := storage.NewTapeService("").Load(path)
	if err != nil {
		return err
	}

	var total float64
	shots, resets := 0, 0
	for _, fr := range tape.Frames {
		if fr.Reset {
			resets++
			continue
		}
		total += fr.Delta
		shots += fr.Input.Fire
	}

	fmt.Printf("arena:    %s\n", tape.Arena)
	fmt.Printf("recorded: %s\n", time.Unix(tape.Timestamp, 0).Format(time.RFC3339))
	fmt.Printf("rules:    %016x\n", tape.Rules)
	fmt.Printf("ticks:    %d\n", tape.Ticks())
	fmt.Printf("resets:   %d\n", resets)
	fmt.Printf("duration: %s\n", time.Duration(total*float64(engine.ReferenceFrame)).Round(time.Millisecond))
	fmt.Printf("shots:    %d\n", shots)
	return nil
}

func frames(path string) error {
	tape, err := storage.NewTapeService("").Load(path)
	if err != nil {
		return err
	}
	for i, fr := range tape.Frames {
		if fr.Reset {
			fmt.Printf("%6d  reset\n", i)
			continue
		}
		fmt.Printf("%6d  dt=%.3f  %+v\n", i, fr.Delta, fr.Input)
	}
	return nil
}

func printHelp() {
	fmt.Println(`Tape Info - просмотр записанных лент ввода
Commands:
  show <tape.rctp>       - заголовок и сводка
  frames <tape.rctp>     - покадровый дамп ввода`)
}
