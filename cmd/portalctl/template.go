package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kiranshivaraju/tenantportal/internal/templates"
	"github.com/kiranshivaraju/tenantportal/pkg/models"
)

func newTemplateCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Encode, validate, push and pull tenant templates",
	}
	cmd.AddCommand(
		newTemplateEncodeCmd(),
		newTemplateDecodeCmd(),
		newTemplateValidateCmd(),
		newTemplatePushCmd(opts),
		newTemplatePullCmd(opts),
	)
	return cmd
}

func newTemplateEncodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encode [file]",
		Short: "Print the base64 form of a template file (stdin when omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			markup, err := readInput(cmd, firstArg(args))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), templates.Encode(markup))
			return nil
		},
	}
}

func newTemplateDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode [file]",
		Short: "Print the markup of a base64 template (stdin when omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			encoded, err := readInput(cmd, firstArg(args))
			if err != nil {
				return err
			}
			markup, err := templates.Decode(strings.TrimSpace(encoded))
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), markup)
			return nil
		},
	}
}

func newTemplateValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a template file for unbalanced tags",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			markup, err := readInput(cmd, firstArg(args))
			if err != nil {
				return err
			}
			res := templates.Validate(markup)
			if !res.Valid {
				for _, e := range res.Errors {
					fmt.Fprintln(cmd.ErrOrStderr(), e)
				}
				return errors.New("template is invalid")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "valid")
			return nil
		},
	}
}

func newTemplatePushCmd(opts *options) *cobra.Command {
	var tenantID, templateType, stylesFile, version string
	cmd := &cobra.Command{
		Use:   "push <file>",
		Short: "Validate and upload a template (requires an admin token)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if tenantID == "" {
				return fmt.Errorf("--tenant is required")
			}
			markup, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			var styles string
			if stylesFile != "" {
				if styles, err = readInput(cmd, stylesFile); err != nil {
					return err
				}
			}

			saved, err := opts.templateClient().SaveTemplate(cmd.Context(), templates.SaveRequest{
				TenantID:     tenantID,
				TemplateType: models.TemplateType(templateType),
				Template:     templates.Encode(markup),
				Styles:       styles,
				Version:      version,
			})
			var verr *templates.ValidationError
			if errors.As(err, &verr) {
				for _, e := range verr.Result.Errors {
					fmt.Fprintln(cmd.ErrOrStderr(), e)
				}
				return errors.New("template rejected")
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %s/%s version %s\n", saved.TenantID, saved.TemplateType, saved.Version)
			return nil
		},
	}
	cmd.Flags().StringVar(&tenantID, "tenant", "", "Tenant id")
	cmd.Flags().StringVar(&templateType, "type", string(models.TemplateTypeDashboard), "Template type: dashboard|auth|profile")
	cmd.Flags().StringVar(&stylesFile, "styles", "", "CSS file shipped with the template")
	cmd.Flags().StringVar(&version, "version", "", "Version label (defaults to the save time)")
	return cmd
}

func newTemplatePullCmd(opts *options) *cobra.Command {
	var tenantID, templateType string
	var raw bool
	cmd := &cobra.Command{
		Use:   "pull",
		Short: "Download a template and print its markup",
		RunE: func(cmd *cobra.Command, args []string) error {
			if tenantID == "" {
				return fmt.Errorf("--tenant is required")
			}
			tpl, err := opts.templateClient().Fetch(cmd.Context(), tenantID, models.TemplateType(templateType))
			if errors.Is(err, templates.ErrNotFound) {
				return fmt.Errorf("no %s template for tenant %q", templateType, tenantID)
			}
			if err != nil {
				return err
			}
			if raw {
				fmt.Fprintln(cmd.OutOrStdout(), tpl.Template)
				return nil
			}
			markup, err := templates.Decode(tpl.Template)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), markup)
			return nil
		},
	}
	cmd.Flags().StringVar(&tenantID, "tenant", "", "Tenant id")
	cmd.Flags().StringVar(&templateType, "type", string(models.TemplateTypeDashboard), "Template type: dashboard|auth|profile")
	cmd.Flags().BoolVar(&raw, "raw", false, "Print the base64 payload instead of markup")
	return cmd
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
