/*
 * javadec - a class file decoder and structural validator
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package main

import (
	"fmt"
	"os"

	"github.com/gonmator/javadec/src/classfile"
	"github.com/gonmator/javadec/src/globals"
	"github.com/gonmator/javadec/src/trace"
	"github.com/spf13/cobra"
)

var (
	checkFlag     bool
	signatureFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "javadec [class-file]",
	Short: "Decode and structurally validate a Java class file",
	Long: `javadec reads a single .class file, decodes its constant pool,
fields, methods and attributes, and reports structural diagnostics
or a Java-source-style signature.`,
	Args: cobra.ExactArgs(1),
	RunE: runDecode,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVarP(&checkFlag, "check", "C", false, "print every structural diagnostic found")
	rootCmd.Flags().BoolVarP(&signatureFlag, "signature", "S", false, "print the class's Java-source-style signature")
	rootCmd.PersistentFlags().Bool("trace", false, "enable verbose decode tracing")
}

func runDecode(cmd *cobra.Command, args []string) error {
	traceEnabled, _ := cmd.Flags().GetBool("trace")
	globals.InitGlobals("cli")
	globals.SetTraceClass(traceEnabled)
	trace.Init()

	path := args[0]
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("javadec: %w", err)
	}
	defer f.Close()

	r := classfile.NewFileReader(f)
	cf, err := classfile.Decode(r)
	if err != nil {
		return fmt.Errorf("javadec: %s: %w", path, err)
	}

	if checkFlag {
		for _, diag := range cf.Errors() {
			fmt.Printf("%s: %d\n", diag.Message, diag.Offset)
		}
		printConstantPool(cf)
	}
	if signatureFlag {
		fmt.Println(cf.Signature())
	}
	if !checkFlag && !signatureFlag {
		status := "valid"
		if len(cf.Errors()) > 0 {
			status = "invalid"
		}
		fmt.Printf("%s: %s (%d diagnostic(s))\n", path, status, len(cf.Errors()))
	}
	return nil
}

// printConstantPool dumps every resolvable constant pool entry after the
// diagnostics, javap-style: scalar and named entries print their resolved
// value directly via classfile.FetchCPEntry; method and interface-method
// refs, which FetchCPEntry reports as unsupported, are annotated via
// classfile.MethodRefName instead.
func printConstantPool(cf *classfile.ClassFile) {
	cp := cf.ConstantPool
	fmt.Println("Constant pool:")
	for i := 1; i <= cp.Count(); i++ {
		v := classfile.FetchCPEntry(cp, i)
		switch v.Kind {
		case classfile.CPValueInt64:
			fmt.Printf("  #%d = %d\n", i, v.Int)
		case classfile.CPValueFloat64:
			fmt.Printf("  #%d = %g\n", i, v.Float)
		case classfile.CPValueString:
			fmt.Printf("  #%d = %s\n", i, v.String)
		default:
			if class, name, descriptor, err := classfile.MethodRefName(cp, i); err == nil {
				fmt.Printf("  #%d = %s.%s:%s\n", i, class, name, descriptor)
			}
		}
	}
}
