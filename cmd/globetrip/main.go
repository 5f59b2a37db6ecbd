// Command globetrip travels an itinerary around the globe without a display.
// It drives a scene frame by frame, reports arrivals and progress, and can
// ask the travel assistant about the last stop.
//
//	globetrip -speed fast
//	globetrip -itinerary europe.yaml -realtime
//	globetrip -ask "What should I eat here?" -chat http://localhost:3000/api/chat
package main

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/npillmayer/globetrip/camera"
	"github.com/npillmayer/globetrip/chat"
	"github.com/npillmayer/globetrip/config"
	"github.com/npillmayer/globetrip/itinerary"
	"github.com/npillmayer/globetrip/journey"
	"github.com/npillmayer/globetrip/scene"
)

//go:embed tour.yaml
var tour []byte

// reporter prints what an info display would show.
type reporter struct {
	sc *scene.Scene
}

func (r *reporter) OnArrive(w itinerary.Waypoint) {
	fmt.Printf("arrived  %-24s %s\n", w.Name, w.LatLng)
	if d, ok := w.Info["description"]; ok {
		fmt.Printf("         %v\n", d)
	}
	if r.sc != nil {
		fmt.Printf("         %s\n", r.sc.Stats())
	}
}

func (r *reporter) OnClear() {
	fmt.Println("journey reset")
}

func main() {
	configFile := flag.String("config", "", "settings file (YAML)")
	itineraryFile := flag.String("itinerary", "", "itinerary file (YAML), default is the built-in world tour")
	speed := flag.String("speed", "", "travel speed: slow, normal or fast")
	maxFrames := flag.Int("frames", 1_000_000, "stop after this many frames")
	realtime := flag.Bool("realtime", false, "pace frames by the wall clock")
	question := flag.String("ask", "", "question for the travel assistant once the journey has ended")
	endpoint := flag.String("chat", "", "URL of the chat service")
	flag.Parse()

	if err := run(*configFile, *itineraryFile, *speed, *maxFrames, *realtime, *question, *endpoint); err != nil {
		fmt.Fprintf(os.Stderr, "globetrip: %v\n", err)
		os.Exit(1)
	}
}

func run(configFile, itineraryFile, speed string, maxFrames int, realtime bool, question, endpoint string) error {
	settings, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if itineraryFile != "" {
		settings.Itinerary = itineraryFile
	}
	if speed != "" {
		settings.Journey.Speed = speed
	}
	if endpoint != "" {
		settings.Chat.Endpoint = endpoint
	}
	it, err := loadItinerary(settings.Itinerary)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Without realtime pacing, time is simulated: every frame advances the
	// clock by one tick.
	simulated := time.Now()
	now := time.Now
	camOpts := []camera.Option{}
	if !realtime {
		now = func() time.Time { return simulated }
		camOpts = append(camOpts, camera.Manual())
	}
	camOpts = append(camOpts, camera.WithClock(now))
	cam := camera.New(camOpts...)

	rep := &reporter{}
	sc, err := scene.New(settings, it, scene.WithCamera(cam), scene.WithClock(now), scene.WithObserver(rep))
	if err != nil {
		return err
	}
	rep.sc = sc
	fmt.Printf("%s: %d stops, %d legs\n", it.Name(), it.N(), len(sc.Machine().Legs()))

	var ticker *time.Ticker
	if realtime {
		ticker = time.NewTicker(settings.Journey.Tick)
		defer ticker.Stop()
	}
	sc.Play()
	for sc.Frames() < maxFrames && sc.State().Phase != journey.Finished {
		if realtime {
			select {
			case <-ctx.Done():
				fmt.Println("interrupted")
				return nil
			case <-ticker.C:
			}
		} else {
			if err := ctx.Err(); err != nil {
				return nil
			}
			simulated = simulated.Add(settings.Journey.Tick)
			cam.Step(simulated)
		}
		sc.Advance()
	}
	fmt.Printf("%s after %d frames\n", sc.State().Phase, sc.Frames())

	if question == "" {
		return nil
	}
	return ask(ctx, settings, sc, question)
}

func loadItinerary(path string) (*itinerary.Itinerary, error) {
	if path == "" {
		return itinerary.Load(bytes.NewReader(tour))
	}
	return itinerary.LoadFile(path)
}

func ask(ctx context.Context, settings config.Settings, sc *scene.Scene, question string) error {
	client := chat.NewClient(settings.Chat.Endpoint,
		chat.WithModel(settings.Chat.Model),
		chat.WithMaxTokens(settings.Chat.MaxTokens),
		chat.WithTemperature(settings.Chat.Temperature),
		chat.WithTimeout(settings.Chat.Timeout))
	conv := chat.NewConversation(settings.Chat.History)
	fmt.Printf("you      %s\n", question)
	res := client.Ask(ctx, conv, sc.ChatPrompt(), question).Wait()
	if !res.Ok() {
		if errors.Is(res.Err, context.Canceled) {
			return nil
		}
		return fmt.Errorf("travel assistant: %w", res.Err)
	}
	fmt.Printf("guide    %s\n", res.Reply)
	return nil
}
