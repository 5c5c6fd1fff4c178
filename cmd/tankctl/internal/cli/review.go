package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/tankops/internal/unload"
)

func printUnload(w io.Writer, u *unload.Unload) {
	fmt.Fprintf(w, "unload %s is %s (%s, %s L)\n", u.ID, u.Status, u.Kind, u.LiterAmount)
}

type reviewFunc func(svc *unload.Service, ctx context.Context, id, approverID uuid.UUID) (*unload.Unload, error)

func newReviewCommand(opts *RootOptions, use, short, message string, fn reviewFunc) *cobra.Command {
	var approver string

	cmd := &cobra.Command{
		Use:   use + " <unload-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			unloadID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid unload id %q", args[0])
			}

			approverID, err := uuid.Parse(approver)
			if err != nil {
				return fmt.Errorf("invalid --approver %q", approver)
			}

			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			u, err := fn(a.unloads, cmd.Context(), unloadID, approverID)

			return emit(cmd.OutOrStdout(), opts.Format, u, err, message, printUnload)
		},
	}

	cmd.Flags().StringVar(&approver, "approver", "", "id of the user approving or rejecting")
	_ = cmd.MarkFlagRequired("approver")

	return cmd
}

func NewApproveCommand(opts *RootOptions) *cobra.Command {
	return newReviewCommand(opts, "approve", "Approve a pending unload", "unload approved", (*unload.Service).Approve)
}

func NewRejectCommand(opts *RootOptions) *cobra.Command {
	return newReviewCommand(opts, "reject", "Reject a pending unload", "unload rejected", (*unload.Service).Reject)
}
