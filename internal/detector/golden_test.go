package detector

import (
	"testing"

	"github.com/petrarca/snippet-lang/internal/rules"
	"github.com/petrarca/snippet-lang/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDetector(t testing.TB, opts ...Option) *Detector {
	t.Helper()
	loaded, err := rules.LoadEmbeddedRules()
	require.NoError(t, err)
	d, err := New(loaded, opts...)
	require.NoError(t, err)
	return d
}

var goldenSamples = []struct {
	name     string
	code     string
	expected types.Language
}{
	{
		name: "javascript function",
		code: `function greet(name) {
  console.log("Hello, " + name);
}

const doubled = [1, 2, 3].map((x) => x * 2);`,
		expected: types.JavaScript,
	},
	{
		name:     "javascript const",
		code:     `const x = 1;`,
		expected: types.JavaScript,
	},
	{
		name: "typescript interface",
		code: `interface User {
  id: number;
  name: string;
}

function greet(user: User): string {
  return ` + "`Hello, ${user.name}`" + `;
}`,
		expected: types.TypeScript,
	},
	{
		name:     "typescript one-liner",
		code:     `interface Foo { x: number }`,
		expected: types.TypeScript,
	},
	{
		name: "javascript class",
		code: `class Greeter {
  constructor(name) {
    this.name = name;
  }

  greet() {
    return "Hello, " + this.name;
  }
}`,
		expected: types.JavaScript,
	},
	{
		name: "typescript class",
		code: `class User {
  private name: string;

  constructor(name: string) {
    this.name = name;
  }
}`,
		expected: types.TypeScript,
	},
	{
		name: "css",
		code: `.container {
  display: flex;
  margin: 0 auto;
  color: #333;
}`,
		expected: types.CSS,
	},
	{
		name: "php",
		code: `<?php
function greet($name) {
    echo "Hello, " . $name;
}
`,
		expected: types.PHP,
	},
	{
		name: "go",
		code: `package main

import "fmt"

func main() {
	nums := []int{1, 2, 3}
	fmt.Println(nums)
}`,
		expected: types.Go,
	},
	{
		name: "ruby",
		code: `class Greeter
  attr_accessor :name

  def initialize(name)
    @name = name
  end

  def greet
    puts "Hello, #{@name}!"
  end
end`,
		expected: types.Ruby,
	},
	{
		name: "cpp",
		code: `#include <iostream>
#include <vector>

int main() {
    std::vector<int> values = {1, 2, 3};
    for (auto v : values) {
        std::cout << v << std::endl;
    }
    return 0;
}`,
		expected: types.CPP,
	},
	{
		name: "cpp class with access labels",
		code: `class Counter {
public:
    Counter() : count(0) {}
    void increment();
private:
    int count;
};`,
		expected: types.CPP,
	},
	{
		name: "java",
		code: `import java.util.List;

public class HelloWorld {
    public static void main(String[] args) {
        System.out.println("Hello, World!");
    }
}`,
		expected: types.Java,
	},
	{
		name: "python",
		code: `import os

def list_files(path):
    """Return the files in path."""
    return [f for f in os.listdir(path)]

if __name__ == "__main__":
    print(list_files("."))`,
		expected: types.Python,
	},
	{
		name:     "python loop",
		code:     "for i in range(10):\n    print(i)",
		expected: types.Python,
	},
	{
		name:     "sql lowercase",
		code:     `select * from users where id = 1`,
		expected: types.SQL,
	},
	{
		name:     "sql uppercase",
		code:     `SELECT * FROM USERS WHERE ID = 1`,
		expected: types.SQL,
	},
	{
		name: "swift",
		code: `import SwiftUI

struct ContentView: View {
    let title: String
    var body: some View {
        Text(title)
    }
}`,
		expected: types.Swift,
	},
	{
		name: "swift function with return arrow",
		code: `func greet(name: String) -> String {
    return "Hello, \(name)!"
}`,
		expected: types.Swift,
	},
	{
		name: "swift statements",
		code: `let x = 5
var y = 10
print(x + y)`,
		expected: types.Swift,
	},
	{
		name: "swift struct",
		code: `struct Point {
    var x: Double
    var y: Double
}`,
		expected: types.Swift,
	},
	{
		name: "csharp",
		code: `using System;

namespace HelloApp
{
    class Program
    {
        static void Main(string[] args)
        {
            Console.WriteLine("Hello, World!");
        }
    }
}`,
		expected: types.CSharp,
	},
	{
		name: "kotlin",
		code: `fun main() {
    val names = listOf("Ada", "Linus")
    for (name in names) {
        println("Hello, $name")
    }
}`,
		expected: types.Kotlin,
	},
	{
		name: "bash",
		code: `#!/bin/bash
for f in *.txt; do
    echo "Processing $f"
done`,
		expected: types.Bash,
	},
	{
		name: "xml",
		code: `<?xml version="1.0" encoding="UTF-8"?>
<note>
  <to>Tove</to>
  <from>Jani</from>
</note>`,
		expected: types.XML,
	},
	{
		name: "json",
		code: `{
  "name": "snippet",
  "tags": ["go", "cli"],
  "favorite": true
}`,
		expected: types.JSON,
	},
	{
		name:     "json array",
		code:     `[1, 2, 3]`,
		expected: types.JSON,
	},
	{
		name: "yaml",
		code: `name: snippets
version: 1
tags:
  - go
  - cli
`,
		expected: types.YAML,
	},
	{
		name: "rust",
		code: `fn main() {
    let mut total = 0;
    for n in 1..=10 {
        total += n;
    }
    println!("total: {}", total);
}`,
		expected: types.Rust,
	},
	{
		name: "objective-c",
		code: `#import <Foundation/Foundation.h>

@interface Greeter : NSObject
- (void)greet;
@end

@implementation Greeter
- (void)greet {
    NSLog(@"Hello");
}
@end`,
		expected: types.ObjectiveC,
	},
	{
		name: "html",
		code: `<!DOCTYPE html>
<html>
<head><title>Demo</title></head>
<body><p>Hello</p></body>
</html>`,
		expected: types.HTML,
	},
	{
		name: "scala",
		code: `object Main extends App {
  val greeting = "Hello"
  println(greeting)
}`,
		expected: types.Scala,
	},
	{
		name:     "empty",
		code:     "",
		expected: types.PlainText,
	},
	{
		name:     "prose",
		code:     "Remember to buy milk and eggs",
		expected: types.PlainText,
	},
}

func TestGoldenSamples(t *testing.T) {
	d := newTestDetector(t)

	for _, tt := range goldenSamples {
		t.Run(tt.name, func(t *testing.T) {
			result := d.Detect(tt.code)
			assert.Equal(t, tt.expected, result.Language, "stage=%s reason=%s", result.Stage, result.Reason)
			assert.Equal(t, tt.expected, d.DetectLanguage(tt.code))
			assert.Equal(t, tt.expected, d.ClassifyByPatterns(tt.code))
		})
	}
}

// Every identifier except the fallback must be reachable from some sample
func TestGoldenSamples_CoverClosedSet(t *testing.T) {
	covered := make(map[types.Language]bool)
	for _, s := range goldenSamples {
		covered[s.expected] = true
	}
	for _, info := range types.Languages() {
		assert.True(t, covered[info.ID], "no golden sample for %s", info.ID)
	}
}
