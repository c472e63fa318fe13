/*
 * Copyright 2025 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rulego/sqldag"
	"github.com/rulego/sqldag/plan"
	"github.com/rulego/sqldag/types"
)

const envPrefix = "DAGC"

// rootOptions holds state shared by all subcommands.
type rootOptions struct {
	v          *viper.Viper
	configFile string
	cfg        types.Config
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{v: viper.New()}

	cmd := &cobra.Command{
		Use:   "dagc",
		Short: "Compile scalar function calls into primitive DAGs",
		Long: `dagc lowers scalar function calls, given as text expressions or as
serialized YAML/JSON plans, into the primitive DAG an execution engine runs.

Settings are read from flags, DAGC_* environment variables and an optional
dagc.yaml in the working directory, in that order of precedence.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			opts.cfg = cfg
			return nil
		},
	}

	defaults := types.NewConfig()
	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "config file (default ./dagc.yaml)")
	flags.String("log-level", defaults.LogLevel, "log level (debug|info|warn|error|off)")
	flags.String("format", defaults.OutputFormat, "output format (tree|list)")
	flags.Int("max-range-elements", defaults.MaxRangeElements, "maximum elements a single range may produce")
	flags.String("schema", "", `input columns, e.g. "a:Int32,b:Nullable(Int32)"`)
	for _, key := range []string{"log-level", "format", "max-range-elements", "schema"} {
		mustBindPFlag(opts.v, key, cmd)
	}

	cmd.AddCommand(newExplainCommand(opts))
	cmd.AddCommand(newEvalCommand(opts))
	cmd.AddCommand(newFunctionsCommand(opts))
	return cmd
}

func mustBindPFlag(v *viper.Viper, key string, cmd *cobra.Command) {
	if err := v.BindPFlag(key, cmd.PersistentFlags().Lookup(key)); err != nil {
		panic(err)
	}
}

// load merges flags, environment and config file into a types.Config.
func (o *rootOptions) load() (types.Config, error) {
	v := o.v
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if o.configFile != "" {
		v.SetConfigFile(o.configFile)
	} else {
		v.SetConfigName("dagc")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if o.configFile != "" || !errors.As(err, &notFound) {
			return types.Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return types.Config{}, err
	}
	return cfg, nil
}

// compiler builds a Compiler logging to the command's stderr.
func (o *rootOptions) compiler(cmd *cobra.Command) (*sqldag.Compiler, error) {
	return sqldag.NewFromConfig(o.cfg, cmd.ErrOrStderr())
}

// compile compiles either the plan file or the single text expression.
func (o *rootOptions) compile(c *sqldag.Compiler, planFile string, args []string) (*sqldag.Result, error) {
	if planFile != "" {
		if len(args) > 0 {
			return nil, errors.New("an expression and --plan are mutually exclusive")
		}
		f, err := os.Open(planFile)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		p, err := plan.Decode(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", planFile, err)
		}
		return c.Compile(p)
	}
	if len(args) != 1 {
		return nil, fmt.Errorf("expected one expression, got %d arguments", len(args))
	}
	schema, err := types.ParseSchema(o.cfg.Schema)
	if err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}
	return c.CompileText(args[0], schema)
}
