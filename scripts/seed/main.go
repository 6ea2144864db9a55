// Command seed loads student records from a JSON file into a running API
// instance through the store client. Useful for local development and demo
// environments.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/studentpro/studentpro-api/internal/client"
)

type seedRecord struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Course       string `json:"course"`
	Age          string `json:"age"`
	RollNumber   string `json:"rollNumber"`
	Phone        string `json:"phone"`
	Department   string `json:"department"`
	GPA          string `json:"gpa"`
	Skills       string `json:"skills"`
	Achievements string `json:"achievements"`
	Portfolio    string `json:"portfolio"`
	AvatarPath   string `json:"avatarPath"`
}

func main() {
	var (
		baseURL  string
		filePath string
		timeout  time.Duration
	)
	flag.StringVar(&baseURL, "base", "http://localhost:8080/api", "API base URL")
	flag.StringVar(&filePath, "file", filepath.Join("scripts", "seed", "students.json"), "Path to JSON seed file")
	flag.DurationVar(&timeout, "timeout", 30*time.Second, "Per-request timeout")
	flag.Parse()

	payload, err := os.ReadFile(filePath)
	if err != nil {
		log.Fatalf("read seed file: %v", err)
	}
	var records []seedRecord
	if err := json.Unmarshal(payload, &records); err != nil {
		log.Fatalf("parse seed file: %v", err)
	}

	c := client.New(baseURL)
	created := 0
	for _, rec := range records {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		attachment, closeAttachment, err := loadAttachment(rec.AvatarPath)
		if err != nil {
			cancel()
			log.Fatalf("load avatar for %q: %v", rec.Name, err)
		}
		student, err := c.Create(ctx, client.RecordForm{
			Name:         rec.Name,
			Email:        rec.Email,
			Course:       rec.Course,
			Age:          rec.Age,
			RollNumber:   rec.RollNumber,
			Phone:        rec.Phone,
			Department:   rec.Department,
			GPA:          rec.GPA,
			Skills:       rec.Skills,
			Achievements: rec.Achievements,
			Portfolio:    rec.Portfolio,
		}, attachment)
		closeAttachment()
		cancel()
		if err != nil {
			log.Fatalf("create %q: %v", rec.Name, err)
		}
		created++
		fmt.Printf("created %s (%s)\n", student.Name, student.ID)
	}
	fmt.Printf("seeded %d records\n", created)
}

func loadAttachment(path string) (*client.Attachment, func(), error) {
	noop := func() {}
	if path == "" {
		return nil, noop, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, noop, err
	}
	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, noop, err
	}
	attachment := &client.Attachment{
		Filename: filepath.Base(path),
		Size:     info.Size(),
		Content:  file,
	}
	return attachment, func() { _ = file.Close() }, nil
}
