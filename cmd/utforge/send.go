package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/utkit/utforge/pkg/forge"
	"github.com/utkit/utforge/pkg/log"
)

func newSendCommand(c *cli) *cobra.Command {
	var (
		rf         requestFlags
		selectPath string
	)
	cmd := &cobra.Command{
		Use:   "send METHOD URL",
		Short: "Send the composed request and print the response body",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			factory, err := c.factory(nil)
			if err != nil {
				return err
			}
			f, err := rf.forge(factory, c.cfg, args[0], args[1])
			if err != nil {
				return err
			}
			ex, err := f.Send(ctx)
			if err != nil {
				return err
			}
			c.logger.Info("response",
				log.String("method", ex.Request.Method),
				log.String("url", ex.Request.FullURL()),
				log.Int("status", ex.Response.StatusCode),
			)
			return printResponse(c.out, ex, selectPath)
		},
	}
	rf.bind(cmd.Flags())
	cmd.Flags().StringVar(&selectPath, "select", "", "print only this gjson path of a JSON response")
	return cmd
}

// printResponse writes the body, or the value at path when path is set.
func printResponse(w io.Writer, ex *forge.Exchange, path string) error {
	if path == "" {
		_, err := fmt.Fprintln(w, ex.Response.Text())
		return err
	}
	doc, err := ex.Response.JSON()
	if err != nil {
		return err
	}
	v := doc.Get(path)
	if !v.Exists() {
		return fmt.Errorf("path %q not found in response", path)
	}
	if v.IsObject() || v.IsArray() {
		_, err = fmt.Fprintln(w, v.Raw)
		return err
	}
	_, err = fmt.Fprintln(w, v.String())
	return err
}
