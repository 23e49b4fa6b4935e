package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const serverPort = 8080

// Usage example on the command line:
// > JWT_SECRET=change-me go run main.go
//
// The client mints its own token with the shared secret, creates a batch of
// contacts and then measures the average latency of PUT, GET and DELETE
// requests against them.
func main() {
	token := mintToken()
	fmt.Println()
	fmt.Println("  Elements      POST       PUT       GET    DELETE ")
	fmt.Println("---------------------------------------------------")
	sizes := []int{100, 500, 1000}
	createBody := []byte(`{
		"name": "Marcus Antonius",
		"phone": "+39 999 777 555",
		"company": "Rome Holdings"
	}`)
	updateBody := []byte(`{
		"notes": "updated by the benchmark client"
	}`)
	for _, loops := range sizes {
		fmt.Printf("%10d", loops)
		ids := make([]string, 0, loops)
		{
			// POST requests, collecting the assigned ids
			var duration int64
			for i := 0; i < loops; i++ {
				id, d := sendPostRequest(token, bytes.NewReader(createBody))
				ids = append(ids, id)
				duration += d
			}
			fmt.Printf("%10d", duration/int64(loops*1000))
		}
		rand.Shuffle(len(ids), func(i, j int) {
			ids[i], ids[j] = ids[j], ids[i]
		})
		{
			// PUT requests
			f := func(id string) int64 {
				return sendRequestForID(token, id, http.MethodPut, bytes.NewReader(updateBody))
			}
			callInLoop(ids, f)
		}
		{
			// GET requests
			f := func(id string) int64 {
				return sendRequestForID(token, id, http.MethodGet, nil)
			}
			callInLoop(ids, f)
		}
		{
			// DELETE requests
			f := func(id string) int64 {
				return sendRequestForID(token, id, http.MethodDelete, nil)
			}
			callInLoop(ids, f)
		}
		fmt.Println()
	}
}

func mintToken() string {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "local-dev-secret"
	}
	claims := jwt.RegisteredClaims{
		Subject:   "benchmark-client",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		fmt.Println("could not sign token", err)
		panic(err)
	}
	return token
}

func callInLoop(ids []string, f func(id string) int64) {
	var duration int64
	for _, id := range ids {
		duration += f(id)
	}
	fmt.Printf("%10d", duration/int64(len(ids)*1000))
}

func sendPostRequest(token string, bodyReader io.Reader) (string, int64) {
	requestURL := fmt.Sprintf("http://localhost:%d/contacts", serverPort)
	resBody, duration := sendRequest(token, http.MethodPost, requestURL, bodyReader)
	var created struct {
		Id string `json:"id"`
	}
	if err := json.Unmarshal(resBody, &created); err != nil {
		fmt.Println("could not unmarshal JSON", err)
		panic(err)
	}
	return created.Id, duration
}

func sendRequestForID(token string, id string, method string, bodyReader io.Reader) int64 {
	requestURL := fmt.Sprintf("http://localhost:%d/contacts/%s", serverPort, id)
	_, duration := sendRequest(token, method, requestURL, bodyReader)
	return duration
}

func sendRequest(token string, method string, requestURL string, bodyReader io.Reader) ([]byte, int64) {
	req, err := http.NewRequest(method, requestURL, bodyReader)
	if err != nil {
		fmt.Println("could not create request", err)
		panic(err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	before := time.Now().UnixNano()
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Println("error making http request", err)
		panic(err)
	}
	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		fmt.Println("could not read response body", err)
		panic(err)
	}
	res.Body.Close()
	after := time.Now().UnixNano()
	return resBody, after - before
}
