/*
   Copyright 2021 Lee R. Boynton

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/
package smithy

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/smithy-gen/sdkgen/data"
)

// Generator is implemented by anything the pipeline package can run as a
// model-to-output stage. BaseGenerator supplies file-vs-stdout output
// handling to implementations that embed it; the codegen package's
// emitters (client, shapes, errors, endpoint, readme) do not implement
// Generator and embed codegen.BaseEmitter instead.
type Generator interface {
	Generate(ast *AST, config *data.Object) error
}

type BaseGenerator struct {
	Config         *data.Object
	OutDir         string
	ForceOverwrite bool
	buf            bytes.Buffer
	file           *os.File
	writer         *bufio.Writer
	Err            error
}

func (gen *BaseGenerator) Configure(conf *data.Object) error {
	gen.Config = conf
	gen.OutDir = conf.GetString("outdir")
	gen.ForceOverwrite = conf.GetBool("force")
	return nil
}

func (gen *BaseGenerator) FileExists(path string) bool {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return false
	}
	return true
}

func (gen *BaseGenerator) FileName(ns string, suffix string) string {
	return strings.ReplaceAll(ns, ".", "-") + suffix
}

func (gen *BaseGenerator) WriteFile(path string, content string) error {
	if gen.Err != nil {
		return gen.Err
	}
	if !gen.ForceOverwrite && gen.FileExists(path) {
		return fmt.Errorf("[%s already exists, not overwriting]", path)
	}
	f, err := os.Create(path)
	if err != nil {
		gen.Err = err
		return err
	}
	defer f.Close()
	writer := bufio.NewWriter(f)
	_, gen.Err = writer.WriteString(content)
	writer.Flush()
	return err
}

func (gen *BaseGenerator) Emit(text string, filename string, separator string) error {
	if gen.OutDir == "" {
		if separator != "" {
			fmt.Print(separator)
		}
		fmt.Print(text)
	} else {
		fpath := filepath.Join(gen.OutDir, filename)
		err := gen.WriteFile(fpath, text)
		if err != nil {
			return err
		}
	}
	return nil
}

type AstGenerator struct {
	BaseGenerator
}

func (gen *AstGenerator) Generate(ast *AST, config *data.Object) error {
	err := gen.Configure(config)
	if err != nil {
		return err
	}
	text := data.Pretty(ast)
	return gen.Emit(text, "model.json", "")
}

