// Command stationsim imitates an Ambient Weather WS-2902 console: it builds
// a plausible weather report and pushes it at a running bridge the same way
// the station firmware does, one GET with flat query parameters.
//
// Usage:
//
//	go run ./cmd/stationsim \
//	  -addr http://localhost:8090 \
//	  -id local -key secret \
//	  -interval 16s -count 10
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

func main() {
	addr := flag.String("addr", "http://localhost:8090", "bridge base URL")
	id := flag.String("id", "local", "station ID credential")
	key := flag.String("key", "key", "station PASSWORD credential")
	interval := flag.Duration("interval", 16*time.Second, "delay between reports")
	count := flag.Int("count", 1, "number of reports to send (0 = forever)")
	indoor := flag.Bool("indoor", true, "include indoor sensor fields")
	flag.Parse()

	client := &http.Client{Timeout: 10 * time.Second}

	for sent := 0; *count == 0 || sent < *count; sent++ {
		if sent > 0 {
			time.Sleep(*interval)
		}
		if err := push(client, *addr, *id, *key, *indoor); err != nil {
			log.Printf("push failed: %v", err)
			continue
		}
		log.Printf("report %d accepted", sent+1)
	}
}

func push(client *http.Client, addr, id, key string, indoor bool) error {
	q := url.Values{}
	q.Set("ID", id)
	q.Set("PASSWORD", key)
	for k, v := range sampleReport(indoor) {
		q.Set(k, v)
	}

	resp, err := client.Get(addr + "/update_weather?" + q.Encode())
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bridge returned %s", resp.Status)
	}
	return nil
}

// sampleReport produces one report with mild jitter around a fair-weather
// baseline, in the units and key names the WS-2902 uploads.
func sampleReport(indoor bool) map[string]string {
	tempF := jitter(71.2, 4)
	report := map[string]string{
		"tempf":          fmtF(tempF, 1),
		"humidity":       strconv.Itoa(40 + rand.Intn(20)),
		"dewptf":         fmtF(tempF-22, 1),
		"windchillf":     fmtF(tempF, 1),
		"winddir":        strconv.Itoa(rand.Intn(360)),
		"windspeedmph":   fmtF(jitter(3.5, 3), 2),
		"windgustmph":    fmtF(jitter(5.5, 4), 2),
		"rainin":         "0.000",
		"dailyrainin":    "0.012",
		"weeklyrainin":   "0.012",
		"monthlyrainin":  "0.351",
		"totalrainin":    "10.214",
		"solarradiation": fmtF(jitter(420, 100), 2),
		"UV":             strconv.Itoa(rand.Intn(9)),
		"absbaromin":     fmtF(jitter(28.92, 0.2), 2),
		"baromin":        fmtF(jitter(29.92, 0.2), 2),
	}
	if indoor {
		report["indoortempf"] = fmtF(jitter(73.4, 2), 1)
		report["indoorhumidity"] = strconv.Itoa(35 + rand.Intn(10))
	}
	return report
}

func jitter(base, spread float64) float64 {
	return base + (rand.Float64()-0.5)*spread
}

func fmtF(v float64, precision int) string {
	return strconv.FormatFloat(v, 'f', precision, 64)
}
