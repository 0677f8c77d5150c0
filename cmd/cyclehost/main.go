//go:build !rp2040 && !rp2350

// Command cyclehost is the operator's terminal for the rig: it opens the
// serial link, shows every line the firmware sends (CYCLE START, CYCLE END,
// command acknowledgements) and forwards typed commands (DECLAMP, OK, FAIL).
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"go.bug.st/serial"
)

func main() {
	var (
		profilePath = flag.String("config", "cyclehost.yaml", "profile file path")
		portFlag    = flag.String("port", "", "serial port (overrides profile)")
		baudFlag    = flag.Int("baud", 0, "baud rate (overrides profile)")
		list        = flag.Bool("list", false, "list serial ports and exit")
	)
	flag.Parse()

	if *list {
		ports, err := serial.GetPortsList()
		if err != nil {
			log.Fatalf("list ports: %v", err)
		}
		if len(ports) == 0 {
			fmt.Println("no serial ports found")
			return
		}
		for _, name := range ports {
			fmt.Println(name)
		}
		return
	}

	prof, err := loadProfile(*profilePath)
	if err != nil {
		log.Fatal(err)
	}
	if *portFlag != "" {
		prof.Serial.Port = *portFlag
	}
	if *baudFlag != 0 {
		prof.Serial.Baud = *baudFlag
	}
	if prof.Serial.Port == "" {
		log.Fatal("no serial port: pass -port or set serial.port in the profile")
	}

	conn, err := serial.Open(prof.Serial.Port, &serial.Mode{BaudRate: prof.Serial.Baud})
	if err != nil {
		log.Fatalf("open %s: %v", prof.Serial.Port, err)
	}
	defer conn.Close()
	fmt.Printf("connected to %s @ %d\n", prof.Serial.Port, prof.Serial.Baud)

	// Firmware -> terminal.
	go func() {
		sc := bufio.NewScanner(conn)
		for sc.Scan() {
			fmt.Printf("<- %s\n", sc.Text())
		}
		if err := sc.Err(); err != nil {
			log.Printf("serial read: %v", err)
		}
		os.Exit(0)
	}()

	// Terminal -> firmware. Commands are sent verbatim plus newline; the
	// firmware does its own trimming and case folding.
	in := bufio.NewScanner(os.Stdin)
	for in.Scan() {
		line := strings.TrimSpace(in.Text())
		if line == "" {
			continue
		}
		if _, err := conn.Write([]byte(line + "\n")); err != nil {
			log.Fatalf("serial write: %v", err)
		}
	}
}
