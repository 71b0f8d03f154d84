package main

import (
	"context"
	"net/http"
	"os"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/victorjacobs/go-eplucon/bridge"
	"github.com/victorjacobs/go-eplucon/config"
	"github.com/victorjacobs/go-eplucon/eplucon"
	"github.com/victorjacobs/go-eplucon/routes"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.LoadConfiguration("eplucon.json")
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading configuration")
		return
	}

	ctx := context.Background()

	// One http.Client shared by every API call for the lifetime of the
	// bridge, the client never closes it.
	client := eplucon.NewClient(cfg.ApiToken, cfg.ApiEndpoint, &http.Client{})

	b, err := bridge.New(ctx, cfg, client)
	if err != nil {
		log.Fatal().Err(err).Msg("Error setting up bridge")
		return
	}

	// First cycle up front so sensors can be registered from real data.
	if _, err := b.Refresh(ctx); err != nil {
		log.Fatal().Err(err).Msg("Initial refresh failed")
		return
	}

	mqttClient := mqtt.NewClient(cfg.Mqtt.ClientOptions())
	if t := mqttClient.Connect(); t.Wait() && t.Error() != nil {
		log.Error().Err(t.Error()).Msg("MQTT connection error")
		return
	}

	if err := b.RegisterSensors(mqttClient); err != nil {
		log.Fatal().Err(err).Msg("Error registering sensors")
		return
	}

	go loopSafely(func() {
		b.Poll(ctx, mqttClient)

		time.Sleep(cfg.PollInterval())
	})

	router := httprouter.New()
	router.GET("/state", routes.State(b))

	go loopSafely(func() {
		http.ListenAndServe(":8080", router)
	})

	select {}
}
