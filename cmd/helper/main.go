package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"time"

	websocketdto "dashdrop/internal/driver-service/core/domain/websocket_dto"

	"github.com/gorilla/websocket"
)

// Driver simulator: registers a driver, joins the realtime channel and
// streams a random walk of location updates.

type registrationRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Password      string `json:"password"`
	VehicleType   string `json:"vehicle_type"`
	VehicleNumber string `json:"vehicle_number"`
	LicenseNumber string `json:"license_number"`
}

type registrationResponse struct {
	UserID   string `json:"user_id"`
	DriverID string `json:"driver_id"`
	Token    string `json:"token"`
}

func main() {
	authURL := flag.String("auth-url", "http://localhost:3000", "auth service base url")
	wsURL := flag.String("ws-url", "ws://localhost:3001/ws", "driver service websocket url")
	interval := flag.Duration("interval", 3*time.Second, "delay between location updates")
	count := flag.Int("count", 20, "number of location updates to send")
	flag.Parse()

	driver, err := register(*authURL)
	if err != nil {
		log.Fatalf("registration failed: %v", err)
	}
	log.Printf("registered driver %s", driver.DriverID)

	conn, _, err := websocket.DefaultDialer.Dial(*wsURL, nil)
	if err != nil {
		log.Fatalf("websocket dial failed: %v", err)
	}
	defer conn.Close()

	go func() {
		for {
			_, payload, err := conn.ReadMessage()
			if err != nil {
				return
			}
			log.Printf("<- %s", payload)
		}
	}()

	if err := sendEvent(conn, websocketdto.EventJoin, websocketdto.JoinMessage{
		ActorID: driver.UserID,
		Role:    "driver",
	}); err != nil {
		log.Fatalf("join failed: %v", err)
	}

	// random walk around a city-center starting point
	lat, lng := 19.0760, 72.8777
	for i := 0; i < *count; i++ {
		lat += (rand.Float64() - 0.5) / 500
		lng += (rand.Float64() - 0.5) / 500

		err := sendEvent(conn, websocketdto.EventUpdateLocation, websocketdto.LocationMessage{
			DriverID: driver.DriverID,
			Location: websocketdto.Location{Latitude: lat, Longitude: lng},
		})
		if err != nil {
			log.Fatalf("location update failed: %v", err)
		}
		log.Printf("-> location %.5f,%.5f", lat, lng)

		time.Sleep(*interval)
	}
}

func register(baseURL string) (registrationResponse, error) {
	suffix := rand.Intn(9000) + 1000
	req := registrationRequest{
		Name:          fmt.Sprintf("Sim Driver %d", suffix),
		Email:         fmt.Sprintf("sim.driver.%d@example.com", suffix),
		Phone:         fmt.Sprintf("+9198765%05d", rand.Intn(100000)),
		Password:      "simulator",
		VehicleType:   "bike",
		VehicleNumber: fmt.Sprintf("MH01AB%04d", suffix),
		LicenseNumber: fmt.Sprintf("MH14201100%05d", rand.Intn(100000)),
	}

	body, err := json.Marshal(req)
	if err != nil {
		return registrationResponse{}, err
	}

	resp, err := http.Post(baseURL+"/drivers", "application/json", bytes.NewReader(body))
	if err != nil {
		return registrationResponse{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return registrationResponse{}, fmt.Errorf("unexpected status %s", resp.Status)
	}

	var out registrationResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return registrationResponse{}, err
	}
	return out, nil
}

func sendEvent(conn *websocket.Conn, eventType string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	event := websocketdto.Event{Type: eventType, Data: payload}

	msg, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, msg)
}
