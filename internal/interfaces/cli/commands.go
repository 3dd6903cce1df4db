package cli

import (
	"io"

	"github.com/openclaw/cupsprint/internal/application/printing"
	"github.com/spf13/cobra"
)

const printerFlagUsage = "Printer name (default: system default)"

func (c *CLI) newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available printers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, svc, err := c.load(cmd)
			if err != nil {
				return err
			}
			printers, err := svc.ListPrinters(ctx)
			if err != nil {
				return err
			}
			return c.presenter().Success(printers, func(w io.Writer) {
				writePrinters(w, printers)
			})
		},
	}
}

func (c *CLI) newInfoCommand() *cobra.Command {
	var printer string
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show printer specs (paper sizes, margins, capabilities)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, svc, err := c.load(cmd)
			if err != nil {
				return err
			}
			info, err := svc.GetInfo(ctx, printer)
			if err != nil {
				return err
			}
			return c.presenter().Success(info, func(w io.Writer) {
				writeInfo(w, info)
			})
		},
	}
	cmd.Flags().StringVar(&printer, "printer", "", printerFlagUsage)
	return cmd
}

func (c *CLI) newOptionsCommand() *cobra.Command {
	var printer string
	cmd := &cobra.Command{
		Use:   "options",
		Short: "Show CUPS options for a printer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, svc, err := c.load(cmd)
			if err != nil {
				return err
			}
			resp, err := svc.GetOptions(ctx, printer)
			if err != nil {
				return err
			}
			return c.presenter().Success(resp.Options, func(w io.Writer) {
				writeOptions(w, resp.Printer, resp.Options)
			})
		},
	}
	cmd.Flags().StringVar(&printer, "printer", "", printerFlagUsage)
	return cmd
}

func (c *CLI) newPrintCommand() *cobra.Command {
	var printer string
	cmd := &cobra.Command{
		Use:   "print FILE",
		Short: "Print a file (PDF or image)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, svc, err := c.load(cmd)
			if err != nil {
				return err
			}

			p := c.presenter()
			resp, err := svc.Print(ctx, printing.PrintRequest{
				File:     args[0],
				Printer:  printer,
				Progress: p.Progress,
			})
			if err != nil {
				if p.JSON() && resp != nil {
					_ = p.writeJSON(resp)
					return errReported
				}
				return err
			}
			return p.Success(resp, func(w io.Writer) {
				writePrinted(w, resp)
			})
		},
	}
	cmd.Flags().StringVar(&printer, "printer", "", printerFlagUsage)
	return cmd
}
