// Command rawtext dumps the raw text of a PDF to a JSON file. It is a debug
// aid for checking what a document actually contains before blaming the
// extraction service; it is not part of the quiz flow.
//
// Requires pdftotext (poppler-utils) on PATH.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"os/exec"
)

type dump struct {
	SourceFile    string `json:"source_file"`
	ExtractedText string `json:"extracted_text"`
}

func main() {
	out := flag.String("o", "raw_text_output.json", "output JSON file")
	flag.Parse()
	if flag.NArg() != 1 {
		log.Fatalf("usage: rawtext [-o out.json] <file.pdf>")
	}
	src := flag.Arg(0)

	cmd := exec.Command("pdftotext", src, "-")
	text, err := cmd.Output()
	if err != nil {
		log.Fatalf("pdftotext failed: %v", err)
	}

	buf, err := json.MarshalIndent(dump{SourceFile: src, ExtractedText: string(text)}, "", "  ")
	if err != nil {
		log.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(*out, buf, 0o644); err != nil {
		log.Fatalf("write %s: %v", *out, err)
	}
	log.Printf("raw text saved to %s", *out)
}
