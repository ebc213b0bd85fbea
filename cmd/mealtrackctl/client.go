package main

import (
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

func runTotals(apiURL, user, date string, out io.Writer) error {
	q := url.Values{}
	q.Set("user", user)
	if date != "" {
		q.Set("date", date)
	}
	resp, err := http.Get(apiURL + "/totals?" + q.Encode())
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("http %d: %s", resp.StatusCode, string(data))
	}
	_, err = io.Copy(out, resp.Body)
	return err
}

// runSend posts a form the way Twilio would and prints the text inside the
// TwiML reply.
func runSend(apiURL, from, text string, out io.Writer) error {
	form := url.Values{}
	form.Set("From", from)
	form.Set("Body", text)
	resp, err := http.PostForm(apiURL+"/whatsapp", form)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("http %d: %s", resp.StatusCode, string(data))
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	var reply struct {
		Message string `xml:"Message"`
	}
	if err := xml.Unmarshal(data, &reply); err != nil {
		return fmt.Errorf("parse TwiML reply: %w", err)
	}
	_, err = fmt.Fprintln(out, reply.Message)
	return err
}
